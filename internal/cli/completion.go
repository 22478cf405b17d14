package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for completion scripts. Every shell
// generator reads flagRegistry, so a new flag needs only a new entry.
type FlagCompletion struct {
	Long       string   // long flag name without dashes
	Short      string   // short flag name without the dash
	Help       string   // description text
	Values     []string // suggested values (nil = boolean or free-form)
	ValueName  string   // label for the value in zsh
	IsFile     bool     // value is a file path
	IsFunction bool     // values come from the function registry
	Section    string   // fish section comment
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "fn", Help: "Function(s) to evaluate", IsFunction: true, ValueName: "function", Section: "Evaluation"},
	{Long: "x", Help: "Argument (integer, decimal or a/b)", ValueName: "number", Section: "Evaluation"},
	{Long: "k", Help: "Series iteration count", Values: []string{"16", "32", "64", "128", "256"}, ValueName: "iterations", Section: "Evaluation"},
	{Long: "digits", Help: "Approximate output length", Values: []string{"20", "40", "100", "1000"}, ValueName: "digits", Section: "Evaluation"},
	{Long: "exact", Help: "Also print the exact fraction", Section: "Evaluation"},
	{Long: "verify", Help: "Re-evaluate at 2k and compare", Section: "Evaluation"},
	{Long: "single-step", Help: "Evaluate only at k", Section: "Evaluation"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "30m"}, ValueName: "duration", Section: "Evaluation"},
	{Long: "concurrency", Help: "Maximum concurrent evaluations", Values: []string{"0", "1", "2", "4", "8"}, ValueName: "count", Section: "Evaluation"},
	{Long: "karatsuba-threshold", Help: "Karatsuba threshold in limbs", Values: []string{"0", "32", "48", "64", "96"}, ValueName: "limbs", Section: "Calibration"},
	{Long: "calibrate", Help: "Run calibration mode", Section: "Calibration"},
	{Long: "auto-calibrate", Help: "Run a quick calibration first", Section: "Calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Calibration"},
	{Long: "repl", Help: "Start the interactive REPL", Section: "Modes"},
	{Long: "tui", Help: "Show the convergence dashboard", Section: "Modes"},
	{Long: "serve", Help: "Serve the HTTP API on an address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address", Section: "Modes"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the result", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Full-length output and debug logs", Section: "Output"},
	{Long: "details", Short: "d", Help: "Per-step timings and convergence details", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "amber", "none"}, ValueName: "theme", Section: "Output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion writes a completion script for shell. functions are
// offered as values of -fn, along with "all".
func GenerateCompletion(out io.Writer, shell string, functions []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, functions)
	case "zsh":
		return generateZshCompletion(out, functions)
	case "fish":
		return generateFishCompletion(out, functions)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, functions)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagSpellings returns the spellings Go's flag package accepts for f. Both
// one and two dashes work; completion offers the long form with two.
func flagSpellings(f FlagCompletion) []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func generateBashCompletion(out io.Writer, functions []string) error {
	var opts []string
	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&caseBody, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		opts = append(opts, flagSpellings(f)...)
		switch {
		case f.IsFunction:
			writeCase(flagSpellings(f), `COMPREPLY=( $(compgen -W "${functions}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, flagSpellings(f)...)
		case len(f.Values) > 0:
			writeCase(flagSpellings(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for numcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_numcalc_completions() {
    local cur prev opts functions
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    functions="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _numcalc_completions numcalc
`, strings.Join(opts, " "), strings.Join(functions, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, functions []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef numcalc

# Zsh completion script for numcalc
# Add this to your ~/.zshrc or place in $fpath

_numcalc() {
    local -a functions
    functions=(%s all)

    _arguments -s \
%s
}

_numcalc "$@"
`, strings.Join(functions, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsFunction:
		valueSuffix = fmt.Sprintf(":%s:($functions)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, functions []string) error {
	lines := []string{
		"# Fish completion script for numcalc",
		"# Add this to ~/.config/fish/completions/numcalc.fish",
		"",
		"complete -c numcalc -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, strings.Join(functions, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func fishCompleteLine(f FlagCompletion, functionList string) string {
	parts := []string{"complete -c numcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsFunction:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", functionList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, functions []string) error {
	var optionEntries, switchEntries []string
	for _, f := range flagRegistry {
		for _, spelling := range flagSpellings(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", spelling, f.Help))
		}
		var source string
		switch {
		case f.IsFunction:
			source = "$numcalcFunctions"
		case len(f.Values) > 0 && !f.IsFile:
			source = "@(" + quoteAll(f.Values) + ")"
		default:
			continue
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, source))
	}

	script := fmt.Sprintf(`# PowerShell completion script for numcalc
# Add this to your $PROFILE

$numcalcFunctions = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'numcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, quoteAll(functions), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
