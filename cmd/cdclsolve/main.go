// Command cdclsolve reads a DIMACS CNF instance, runs the CDCL core to
// completion (or timeout), and prints the DIMACS-style result line and
// model. Grounded on the teacher's root main.go: same flag package,
// same cpuprof/memprof toggles via runtime/pprof, same log.Fatal-on-
// setup-error style, extended to expose most of sat.Config as flags
// (NoElim, ElimLitLimit and MaxMemoryMB have no flag) and to optionally
// emit a DRAT proof.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/solvergo/cdcl/internal/dimacs"
	"github.com/solvergo/cdcl/internal/proof"
	"github.com/solvergo/cdcl/internal/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile to memprof")
	flagProofOut   = flag.String("drat", "", "write a DRAT proof to this path (empty disables proof logging)")
	flagTimeout    = flag.Duration("timeout", 0, "abort the search after this long (0 disables the timeout)")

	flagVarDecay     = flag.Float64("var-decay", sat.DefaultConfig().VariableDecayRate, "variable activity decay rate")
	flagClauseDecay  = flag.Float64("clause-decay", sat.DefaultConfig().ClauseDecayRate, "learnt clause activity decay rate")
	flagPhaseSaving  = flag.Bool("phase-saving", sat.DefaultConfig().PhaseSaving, "remember each variable's last polarity across backtracks")
	flagRestartK     = flag.Float64("restart-k", sat.DefaultConfig().RestartThresholdK, "force a restart once fastLBD/slowLBD exceeds this")
	flagRestartR     = flag.Float64("restart-r", sat.DefaultConfig().RestartBlockingR, "suppress a restart while the trail is this many times deeper than its own recent average")
	flagRestartGap   = flag.Int("restart-min-gap", sat.DefaultConfig().RestartMinGap, "minimum conflicts between consecutive restarts")
	flagFirstReduce  = flag.Int("first-reduction", sat.DefaultConfig().FirstReduction, "conflict count at which the first clause-database reduction fires")
)

type cliConfig struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	proofPath    string
	solverConfig sat.Config
}

func parseConfig() (*cliConfig, error) {
	flag.Parse()
	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	cfg := sat.DefaultConfig()
	cfg.VariableDecayRate = *flagVarDecay
	cfg.ClauseDecayRate = *flagClauseDecay
	cfg.PhaseSaving = *flagPhaseSaving
	cfg.RestartThresholdK = *flagRestartK
	cfg.RestartBlockingR = *flagRestartR
	cfg.RestartMinGap = *flagRestartGap
	cfg.FirstReduction = *flagFirstReduce
	cfg.Timeout = *flagTimeout

	return &cliConfig{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		proofPath:    *flagProofOut,
		solverConfig: cfg,
	}, nil
}

func run(cfg *cliConfig) error {
	s := sat.NewSolver(cfg.solverConfig)

	var fw *proof.FileWriter
	if cfg.proofPath != "" {
		f, err := os.Create(cfg.proofPath)
		if err != nil {
			return fmt.Errorf("could not open proof output: %s", err)
		}
		defer f.Close()
		fw = proof.NewFileWriter(f)
		defer fw.Flush()
		s.SetProofWriter(fw)
	}

	if err := dimacs.LoadFile(cfg.instanceFile, s); err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVars())

	ctx := context.Background()
	if cfg.solverConfig.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.solverConfig.Timeout)
		defer cancel()
	}

	t := time.Now()
	result, err := s.Solve(ctx)
	elapsed := time.Since(t)
	if err != nil {
		return fmt.Errorf("search aborted: %s", err)
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("s %s\n", result.Status)
	if result.Status == sat.StatusSatisfiable {
		fmt.Print("v")
		for v := 1; v < len(result.Model); v++ {
			if result.Model[v] == sat.False {
				fmt.Printf(" -%d", v)
			} else {
				fmt.Printf(" %d", v)
			}
		}
		fmt.Println(" 0")
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
