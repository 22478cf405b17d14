package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/numcalc/internal/bigint"
	appconfig "github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/rational"
	"github.com/agbru/numcalc/internal/ui"
)

// Bounds on "fact" and "fib" so a typo cannot hang the session.
const (
	maxFactorialArg = 1_000_000
	maxFibonacciArg = 100_000_000
)

// REPLConfig holds the session defaults.
type REPLConfig struct {
	// Iterations is the series iteration count k.
	Iterations uint
	// Digits bounds approximate output length.
	Digits int
	// Exact also prints the exact fraction.
	Exact bool
	// Timeout bounds each evaluation.
	Timeout time.Duration
}

// REPL is an interactive evaluation session.
type REPL struct {
	config  REPLConfig
	factory engine.Factory
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a session reading stdin and writing stdout.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	if config.Iterations == 0 {
		config.Iterations = engine.DefaultIterations
	}
	if config.Digits <= 0 {
		config.Digits = engine.DefaultDigits
	}
	if config.Timeout <= 0 {
		config.Timeout = appconfig.DefaultTimeout
	}
	return &REPL{
		config:  config,
		factory: factory,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until "exit" or EOF.
func (r *REPL) Start() {
	fmt.Fprintln(r.out, ui.HeaderBox("numcalc: exact rational arithmetic, interactive mode"))
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"numcalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmds := [][2]string{
		{"<fn> [x] [k]", "Evaluate a function, e.g. sin 1/2 or pi 64"},
		{"k <n>", "Set the default iteration count"},
		{"digits <n>", "Set the approximate output length"},
		{"exact", "Toggle printing of the exact fraction"},
		{"int <literal>", "Show an integer in decimal, hex and binary, with a primality test"},
		{"fact <n>", "Compute n!"},
		{"fib <n>", "Compute the Fibonacci number F(n)"},
		{"list", "List available functions"},
		{"status", "Display current settings"},
		{"help", "Display this help"},
		{"exit / quit", "Leave interactive mode"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-14s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand runs one input line and reports whether to continue.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "k":
		r.cmdIterations(args)
	case "digits":
		r.cmdDigits(args)
	case "exact":
		r.config.Exact = !r.config.Exact
		fmt.Fprintf(r.out, "Exact output: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Exact), ui.ColorReset())
	case "int":
		r.cmdInt(args)
	case "fact":
		r.cmdFactorial(args)
	case "fib":
		r.cmdFibonacci(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if ev, err := r.factory.Get(cmd); err == nil {
			r.evaluate(ev, args)
		} else {
			r.errorf("Unknown command: %s", cmd)
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) errorf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed(), fmt.Sprintf(format, a...), ui.ColorReset())
}

// evaluate parses "[x] [k]" for ev and prints the result. A constant takes
// only k.
func (r *REPL) evaluate(ev engine.Evaluator, args []string) {
	var x *rational.Rat
	if ev.Arity() > 0 {
		if len(args) == 0 {
			r.errorf("Usage: %s <x> [k]", ev.Name())
			return
		}
		v, err := appconfig.ParseArgument(args[0], appconfig.MaxExponent)
		if err == nil {
			err = appconfig.CheckArgument(ev.Name(), v, appconfig.MaxExpArgument)
		}
		if err != nil {
			r.errorf("Invalid argument %s: %v", args[0], err)
			return
		}
		x, args = v, args[1:]
	}
	k := r.config.Iterations
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || n > engine.MaxIterations {
			r.errorf("Invalid iteration count: %s (0 to %d)", args[0], engine.MaxIterations)
			return
		}
		k = uint(n)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	res, err := ev.Evaluate(ctx, progressChan, 0, x, engine.Options{Iterations: k})
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()
	fmt.Fprintln(r.out)

	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayResult(orchestration.EvaluationResult{Name: ev.Name(), Argument: x, Result: res, Duration: duration},
		orchestration.PresentationOptions{Digits: r.config.Digits, Exact: r.config.Exact}, r.out)
	fmt.Fprintf(r.out, "  %sk=%d, %s stable digits, %s%s\n\n", ui.ColorGrey(), res.Iterations,
		stableLabel(res.StableDigits), format.FormatExecutionDuration(duration), ui.ColorReset())
}

func (r *REPL) cmdIterations(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: k <n>")
		return
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || n == 0 || n > engine.MaxIterations {
		r.errorf("Invalid iteration count: %s (1 to %d)", args[0], engine.MaxIterations)
		return
	}
	r.config.Iterations = uint(n)
	fmt.Fprintf(r.out, "Iterations set to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

func (r *REPL) cmdDigits(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: digits <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		r.errorf("Invalid digit count: %s", args[0])
		return
	}
	r.config.Digits = n
	fmt.Fprintf(r.out, "Digits set to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

func (r *REPL) cmdInt(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: int <literal>")
		return
	}
	v, err := bigint.ParseInt(args[0])
	if err != nil {
		r.errorf("Invalid integer %s: %v", args[0], err)
		return
	}
	mag := v.Magnitude()
	fmt.Fprintf(r.out, "  Decimal: %s%s%s\n", ui.ColorCyan(), format.TruncateDigits(v.String(), TruncationLimit, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(r.out, "  Hex:     %s%s%s\n", ui.ColorCyan(), format.TruncateDigits(v.TextWithPrefix(16), TruncationLimit, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(r.out, "  Binary:  %s%s%s\n", ui.ColorCyan(), format.TruncateDigits(v.TextWithPrefix(2), TruncationLimit, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:    %d (%d limbs)\n", v.BitLen(), mag.Len())
	fmt.Fprintf(r.out, "  Prime:   %s\n", yesNo(v.Sign() > 0 && mag.IsPrime()))
}

func (r *REPL) cmdFactorial(args []string) {
	n, ok := r.parseCount("fact", args, maxFactorialArg)
	if !ok {
		return
	}
	start := time.Now()
	f := bigint.Factorial(uint32(n))
	r.printInteger(fmt.Sprintf("%d!", n), f, time.Since(start))
}

func (r *REPL) cmdFibonacci(args []string) {
	n, ok := r.parseCount("fib", args, maxFibonacciArg)
	if !ok {
		return
	}
	start := time.Now()
	f := bigint.Fibonacci(n)
	r.printInteger(fmt.Sprintf("F(%d)", n), f, time.Since(start))
}

func (r *REPL) parseCount(cmd string, args []string, limit uint64) (uint64, bool) {
	if len(args) == 0 {
		r.errorf("Usage: %s <n>", cmd)
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || n > limit {
		r.errorf("Invalid value: %s (0 to %d)", args[0], limit)
		return 0, false
	}
	return n, true
}

func (r *REPL) printInteger(label string, v *bigint.UBigInt, d time.Duration) {
	s := v.String()
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(d), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s\n", ui.ColorCyan(), v.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits: %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(s))), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s = %s%s%s\n\n", label, ui.ColorGreen(), format.TruncateDigits(s, TruncationLimit, DisplayEdges), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable functions:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, ev := range r.factory.GetAll() {
		usage := ev.Name()
		if ev.Arity() > 0 {
			usage += " <x>"
		}
		fmt.Fprintf(r.out, "  %s%-10s%s - %s\n", ui.ColorYellow(), usage, ui.ColorReset(), ev.Description())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Iterations (k): %s%d%s\n", ui.ColorCyan(), r.config.Iterations, ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits:         %s%d%s\n", ui.ColorCyan(), r.config.Digits, ui.ColorReset())
	fmt.Fprintf(r.out, "  Exact output:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Exact), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Karatsuba:      %s%d%s limbs\n", ui.ColorCyan(), bigint.KaratsubaThreshold(), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
