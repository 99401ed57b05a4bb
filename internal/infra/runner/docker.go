// Where: internal/infra/runner/docker.go
// What: Containerized generator execution via the Docker Engine API.
// Why: Run the generator without a local Java/openapi-generator install.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// DockerClient defines the subset of Docker SDK methods used by DockerRunner.
// This interface enables mocking the Docker client in tests.
type DockerClient interface {
	ContainerCreate(
		ctx context.Context,
		config *container.Config,
		hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig,
		platform *ocispec.Platform,
		containerName string,
	) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerWait(
		ctx context.Context,
		containerID string,
		condition container.WaitCondition,
	) (<-chan container.WaitResponse, <-chan error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error)
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
func NewDockerClient() (*client.Client, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return dockerClient, nil
}

// DockerRunner runs commands inside a generator image.
// The image entrypoint is the generator itself, so the program name passed to
// Capture is dropped and only args become the container command.
type DockerRunner struct {
	Client DockerClient
	Image  string
	// Mounts are host paths bound at the same path inside the container so
	// that paths in the argument list resolve unchanged.
	Mounts []string
	// WorkDir is the container working directory when Capture gets no dir.
	WorkDir string
	// User is passed as the container user; empty keeps the image default.
	User string
}

// HostUser returns "uid:gid" for the current process, or "" where ids are unavailable.
func HostUser() string {
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", uid, gid)
}

func (r DockerRunner) Capture(ctx context.Context, dir, name string, args ...string) (Result, error) {
	if r.Client == nil {
		return Result{}, errDockerClientNil
	}
	if strings.TrimSpace(r.Image) == "" {
		return Result{}, errImageRequired
	}

	if dir == "" {
		dir = r.WorkDir
	}
	config := &container.Config{
		Image:      r.Image,
		Cmd:        args,
		WorkingDir: dir,
		User:       r.User,
	}
	hostConfig := &container.HostConfig{Binds: bindMounts(r.Mounts)}

	created, err := r.create(ctx, config, hostConfig)
	if err != nil {
		return Result{}, fmt.Errorf("run %s in %s: %w", name, r.Image, err)
	}
	defer func() {
		_ = r.Client.ContainerRemove(context.Background(), created.ID, container.RemoveOptions{Force: true})
	}()

	if err := r.Client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return Result{}, fmt.Errorf("start container: %w", err)
	}

	exitCode, err := r.wait(ctx, created.ID)
	if err != nil {
		return Result{}, err
	}

	logs, err := r.Client.ContainerLogs(ctx, created.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return Result{}, fmt.Errorf("read container logs: %w", err)
	}
	defer logs.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, logs); err != nil {
		return Result{}, fmt.Errorf("demux container logs: %w", err)
	}
	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: exitCode}, nil
}

func (r DockerRunner) create(
	ctx context.Context,
	config *container.Config,
	hostConfig *container.HostConfig,
) (container.CreateResponse, error) {
	created, err := r.Client.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	if err == nil || !cerrdefs.IsNotFound(err) {
		return created, err
	}
	if err := r.pull(ctx); err != nil {
		return container.CreateResponse{}, err
	}
	return r.Client.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
}

func (r DockerRunner) pull(ctx context.Context) error {
	progress, err := r.Client.ImagePull(ctx, r.Image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", r.Image, err)
	}
	defer progress.Close()
	if _, err := io.Copy(io.Discard, progress); err != nil {
		return fmt.Errorf("pull image %s: %w", r.Image, err)
	}
	return nil
}

func (r DockerRunner) wait(ctx context.Context, containerID string) (int, error) {
	statusCh, errCh := r.Client.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return 0, fmt.Errorf("wait for container: %w", err)
	case status := <-statusCh:
		if status.Error != nil && status.Error.Message != "" {
			return 0, fmt.Errorf("wait for container: %s", status.Error.Message)
		}
		return int(status.StatusCode), nil
	}
}

func bindMounts(paths []string) []string {
	seen := map[string]bool{}
	binds := make([]string, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		binds = append(binds, path+":"+path)
	}
	return binds
}
