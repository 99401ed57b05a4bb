// Where: internal/infra/runner/docker_test.go
// What: Tests for containerized generator execution.
// Why: Ensure container setup, log demultiplexing, image pulls, and cleanup.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDockerClient struct {
	createErrs []error
	config     *container.Config
	hostConfig *container.HostConfig
	creates    int
	started    bool
	removed    []string
	pulled     []string
	status     container.WaitResponse
	waitErr    error
	stdout     string
	stderr     string
}

func (f *fakeDockerClient) ContainerCreate(
	_ context.Context,
	config *container.Config,
	hostConfig *container.HostConfig,
	_ *network.NetworkingConfig,
	_ *ocispec.Platform,
	_ string,
) (container.CreateResponse, error) {
	f.creates++
	f.config = config
	f.hostConfig = hostConfig
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return container.CreateResponse{}, err
		}
	}
	return container.CreateResponse{ID: "c1"}, nil
}

func (f *fakeDockerClient) ContainerStart(_ context.Context, _ string, _ container.StartOptions) error {
	f.started = true
	return nil
}

func (f *fakeDockerClient) ContainerWait(
	_ context.Context,
	_ string,
	_ container.WaitCondition,
) (<-chan container.WaitResponse, <-chan error) {
	statusCh := make(chan container.WaitResponse, 1)
	errCh := make(chan error, 1)
	if f.waitErr != nil {
		errCh <- f.waitErr
	} else {
		statusCh <- f.status
	}
	return statusCh, errCh
}

func (f *fakeDockerClient) ContainerLogs(_ context.Context, _ string, _ container.LogsOptions) (io.ReadCloser, error) {
	var buf bytes.Buffer
	if f.stdout != "" {
		_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte(f.stdout))
	}
	if f.stderr != "" {
		_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte(f.stderr))
	}
	return io.NopCloser(&buf), nil
}

func (f *fakeDockerClient) ContainerRemove(_ context.Context, containerID string, _ container.RemoveOptions) error {
	f.removed = append(f.removed, containerID)
	return nil
}

func (f *fakeDockerClient) ImagePull(_ context.Context, ref string, _ image.PullOptions) (io.ReadCloser, error) {
	f.pulled = append(f.pulled, ref)
	return io.NopCloser(bytes.NewBufferString("{}")), nil
}

func TestDockerRunnerCapture(t *testing.T) {
	client := &fakeDockerClient{
		status: container.WaitResponse{StatusCode: 2},
		stdout: "generated\n",
		stderr: "warn\n",
	}
	r := DockerRunner{
		Client: client,
		Image:  "openapitools/openapi-generator-cli:v7.10.0",
		Mounts: []string{"/work", "/work", " "},
		User:   "1000:1000",
	}

	result, err := r.Capture(context.Background(), "/work", "openapi-generator", "generate", "--input-spec", "/work/yamls/a.yaml")
	require.NoError(t, err)

	assert.Equal(t, "generated\n", string(result.Stdout))
	assert.Equal(t, "warn\n", string(result.Stderr))
	assert.Equal(t, 2, result.ExitCode)

	require.NotNil(t, client.config)
	assert.Equal(t, []string{"generate", "--input-spec", "/work/yamls/a.yaml"}, []string(client.config.Cmd))
	assert.Equal(t, "/work", client.config.WorkingDir)
	assert.Equal(t, "1000:1000", client.config.User)
	assert.Equal(t, []string{"/work:/work"}, client.hostConfig.Binds)
	assert.True(t, client.started)
	assert.Equal(t, []string{"c1"}, client.removed)
	assert.Empty(t, client.pulled)
}

func TestDockerRunnerPullsMissingImage(t *testing.T) {
	client := &fakeDockerClient{createErrs: []error{cerrdefs.ErrNotFound, nil}}
	r := DockerRunner{Client: client, Image: "img:1"}

	_, err := r.Capture(context.Background(), "", "openapi-generator", "version")
	require.NoError(t, err)

	assert.Equal(t, []string{"img:1"}, client.pulled)
	assert.Equal(t, 2, client.creates)
}

func TestDockerRunnerCreateError(t *testing.T) {
	client := &fakeDockerClient{createErrs: []error{errors.New("daemon down")}}
	r := DockerRunner{Client: client, Image: "img:1"}

	_, err := r.Capture(context.Background(), "", "openapi-generator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon down")
	assert.Empty(t, client.pulled)
	assert.Empty(t, client.removed)
}

func TestDockerRunnerWaitError(t *testing.T) {
	client := &fakeDockerClient{waitErr: errors.New("lost connection")}
	r := DockerRunner{Client: client, Image: "img:1"}

	_, err := r.Capture(context.Background(), "", "openapi-generator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait for container")
	assert.Equal(t, []string{"c1"}, client.removed)
}

func TestDockerRunnerRequiresClientAndImage(t *testing.T) {
	_, err := DockerRunner{Image: "img"}.Capture(context.Background(), "", "x")
	require.ErrorIs(t, err, errDockerClientNil)

	_, err = DockerRunner{Client: &fakeDockerClient{}}.Capture(context.Background(), "", "x")
	require.ErrorIs(t, err, errImageRequired)
}
