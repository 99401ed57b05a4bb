// Where: internal/app/completion.go
// What: Shell completion command implementation.
// Why: Provide tab completion for bash, zsh, and fish.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

// visibleCommands returns top-level command nodes shown to users.
func visibleCommands(cli CLI) []*kong.Node {
	parser, err := kong.New(&cli)
	if err != nil {
		return nil
	}
	var nodes []*kong.Node
	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func commandNames(cli CLI) []string {
	var names []string
	for _, node := range visibleCommands(cli) {
		names = append(names, node.Name)
	}
	return names
}

func runCompletionBash(cli CLI, out io.Writer) int {
	script := `_oapigen_find_command() {
    local i word
    for ((i=1; i<COMP_CWORD; i++)); do
        word="${COMP_WORDS[i]}"
        case "${word}" in
            -C|--dir|--config|--env-file|--log-level|--runtime)
                ((i++))
                ;;
            -*|"")
                ;;
            *)
                echo "${word}"
                return 0
                ;;
        esac
    done
    return 1
}
_oapigen_completion() {
    local cur prev cmd opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    cmd=$(_oapigen_find_command)
    opts="%s"

    if [[ "${prev}" == "--kind" || "${prev}" == "-k" ]]; then
        COMPREPLY=( $(compgen -W "$(_oapigen_complete kinds)" -- "${cur}") )
        return 0
    fi
    if [[ "${prev}" == "--runtime" ]]; then
        COMPREPLY=( $(compgen -W "exec docker" -- "${cur}") )
        return 0
    fi
    if [[ "${prev}" == "--dir" || "${prev}" == "-C" ]]; then
        COMPREPLY=( $(compgen -d -- "${cur}") )
        return 0
    fi
    if [[ "${prev}" == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
        return 0
    fi
    if [[ "${cmd}" == "build" || "${cmd}" == "plan" ]]; then
        COMPREPLY=( $(compgen -W "$(_oapigen_complete specs)" -- "${cur}") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
}
_oapigen_complete() {
    command oapigen __complete "$1" 2>/dev/null
}
complete -F _oapigen_completion oapigen
`
	fmt.Fprintf(out, script, strings.Join(commandNames(cli), " "))
	return 0
}

func runCompletionZsh(cli CLI, out io.Writer) int {
	var described []string
	for _, node := range visibleCommands(cli) {
		described = append(described, fmt.Sprintf("'%s:%s'", node.Name, node.Help))
	}

	script := `#compdef oapigen
_oapigen_completion() {
    local -a commands
    commands=(
        %s
    )
    local prev="${words[$CURRENT-1]}"
    local cmd="" i
    for ((i=2; i<CURRENT; i++)); do
        case "${words[$i]}" in
            -C|--dir|--config|--env-file|--log-level|--runtime) ((i++)) ;;
            -*|"") ;;
            *) cmd="${words[$i]}"; break ;;
        esac
    done
    if [[ "${prev}" == "--kind" || "${prev}" == "-k" ]]; then
        _values 'kinds' ${(f)"$(command oapigen __complete kinds 2>/dev/null)"}
        return
    fi
    if [[ "${prev}" == "--runtime" ]]; then
        _values 'runtimes' exec docker
        return
    fi
    if [[ "${cmd}" == "completion" ]]; then
        _values 'shells' bash zsh fish
        return
    fi
    if [[ "${cmd}" == "build" || "${cmd}" == "plan" ]]; then
        _values 'specs' ${(f)"$(command oapigen __complete specs 2>/dev/null)"}
        return
    fi
    _describe 'commands' commands
}
compdef _oapigen_completion oapigen
`
	fmt.Fprintf(out, script, strings.Join(described, "\n        "))
	return 0
}

func runCompletionFish(cli CLI, out io.Writer) int {
	for _, node := range visibleCommands(cli) {
		fmt.Fprintf(out, "complete -c oapigen -f -n '__fish_use_subcommand' -a %s -d '%s'\n", node.Name, node.Help)
	}
	fmt.Fprintln(out, "complete -c oapigen -f -l kind -s k -r -a '(oapigen __complete kinds)' -d 'Build kind'")
	fmt.Fprintln(out, "complete -c oapigen -f -l runtime -r -a 'exec docker' -d 'Generator runtime'")
	fmt.Fprintln(out, "complete -c oapigen -l dir -s C -r -a '(__fish_complete_directories)' -d 'Working directory'")
	fmt.Fprintln(out, "complete -c oapigen -f -n '__fish_seen_subcommand_from build plan' -a '(oapigen __complete specs)'")
	fmt.Fprintln(out, "complete -c oapigen -f -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'")
	return 0
}
