// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/debug"
	"time"
	"github.com/mlnoga/patternscore/internal/ops"
	"github.com/mlnoga/patternscore/internal/ops/pre"
	"github.com/mlnoga/patternscore/internal/ops/score"
	"github.com/mlnoga/patternscore/internal/rest"
	"github.com/mlnoga/patternscore/internal/stats"
)

const version = "0.1.0"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var log   = flag.String("log", "", "save log output to `file` in addition to stdout")
var chain = flag.String("chain", "", "load processing chain from JSON `file`, replacing the default chain")

var maxDim        = flag.Int64("maxDim", 0, "resize so the longer image edge has at most `pixels`, 0=off")
var contamination = flag.Float64("contamination", 0.4, "max fraction of spectrum distances excised as outliers")
var neighbors     = flag.Int64("neighbors", 20, "neighborhood size for outlier scoring")
var topK          = flag.Int64("topK", 20, "number of largest distances averaged into the disk radius")

var addr   = flag.String("addr", ":8080", "listen `address` for the serve command")
var chroot = flag.String("chroot", "", "serve from chroot jail at `dir` (requires root)")
var setuid = flag.Int64("setuid", -1, "drop to given user `id` after opening the chroot jail, -1=off")

func main() {
	var logWriter io.Writer=os.Stdout
	debug.SetGCPercent(10)
	start:=time.Now()
	flag.Usage=func(){
	    fmt.Fprintf(logWriter, `Patternscore Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (score|serve|legal|version) (img0.png ... imgn.jpg)

Commands:
  score   Score how pattern-like the input images are
  serve   Start REST API server
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
	    flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log!="" {
		f, err:=os.Create(*log)
		if err!=nil {
			fmt.Fprintf(logWriter, "Unable to open logfile '%s'\n", *log)
			os.Exit(-1)
		}
		defer f.Close()
		logWriter=io.MultiWriter(os.Stdout, f)
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(logWriter, "Could not create CPU profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(logWriter, "Could not start CPU profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	fmt.Fprintf(logWriter, "Using %s statistics kernels\n", stats.ActiveKernels().Name)

	var err error
	switch args[0] {
	case "score":
		err=cmdScore(args[1:], logWriter)

	case "serve":
		if err=rest.MakeSandbox(logWriter, *chroot, int(*setuid)); err!=nil {
			fmt.Fprintf(logWriter, "Error entering sandbox: %s\n", err.Error())
			os.Exit(-1)
		}
		rest.Serve(*addr)

	case "legal":
		fmt.Fprintf(logWriter, "%s\n", legal)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	now:=time.Now()
	elapsed:=now.Sub(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			fmt.Fprintf(logWriter, "Could not create memory profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f,0); err != nil {
			fmt.Fprintf(logWriter, "Could not write allocation profile: %s\n", err.Error())
			os.Exit(-1)
		}
	}

	if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}
}

// Perform pattern scoring on all files matching the given patterns
func cmdScore(patterns []string, logWriter io.Writer) error {
	if len(patterns)==0 {
		return fmt.Errorf("score command needs at least one file or pattern argument")
	}

	seq:=ops.NewOpSequence(ops.NewOpLoadMany(patterns))
	if *chain!="" {
		b, err:=os.ReadFile(*chain)
		if err!=nil { return err }
		loaded:=&ops.OpSequence{}
		if err:=json.Unmarshal(b, loaded); err!=nil {
			return fmt.Errorf("parsing chain file %s: %s", *chain, err.Error())
		}
		seq.Append(loaded.Steps...)
	} else {
		seq.Append(
			pre.NewOpResize(int32(*maxDim)),
			score.NewOpPatternScore(*contamination, int(*neighbors), int(*topK)),
		)
	}

	m,err:=json.MarshalIndent(seq,"", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "\nScoring with these settings:\n%s\n\n", string(m))

	c:=ops.NewContext(logWriter)
	promises, err:=seq.MakePromises(nil, c)
	if err!=nil { return err }

	frames, err:=ops.MaterializeAll(promises, c.MaxThreads, false)
	if err!=nil { return err }

	fmt.Fprintf(logWriter, "\n%-6s %-40s %s\n", "ID", "File", "Score")
	for _,f:=range frames {
		fmt.Fprintf(logWriter, "%-6d %-40s %.4f\n", f.ID, f.FileName, f.Scores[score.ScoreKey])
	}
	return nil
}
