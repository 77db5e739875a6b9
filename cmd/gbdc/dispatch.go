package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cnftools/gbdc"
	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/cnfindex"
	"github.com/cnftools/gbdc/dimacs"
	"github.com/cnftools/gbdc/features"
	"github.com/cnftools/gbdc/gate"
	"github.com/cnftools/gbdc/isp"
	"github.com/cnftools/gbdc/oracle"
)

// config carries the flags shared by every tool (spec.md S7 Configuration).
type config struct {
	Patterns bool
	Semantic bool
	Repeat   int
}

// dispatch selects one of the six tools by name, falling back to gbdhash for
// any name it doesn't recognise (spec.md S6).
func dispatch(tool, path string, w io.Writer, cfg config) error {
	f, err := os.Open(path)
	if err != nil {
		return gbdc.WrapError("dispatch", "opening input file", err)
	}
	defer f.Close()

	switch tool {
	case "normalize":
		return runNormalize(f, w)
	case "isp":
		return runISP(f, w)
	case "extract":
		return runExtract(f, w, cfg)
	case "gates":
		return runGates(f, w, cfg)
	case "solve":
		return runSolve(f, w)
	default:
		return runGBDHash(f, w)
	}
}

func runNormalize(r io.Reader, w io.Writer) error {
	if err := dimacs.Normalize(w, r); err != nil {
		return gbdc.WrapError("normalize", "normalizing formula", err)
	}
	return nil
}

func runISP(r io.Reader, w io.Writer) error {
	f, err := dimacs.Read(r)
	if err != nil {
		return gbdc.WrapError("isp", "reading formula", err)
	}
	if err := isp.WriteProblem(w, f); err != nil {
		return gbdc.WrapError("isp", "writing independent-set problem", err)
	}
	return nil
}

// runGBDHash hashes a canonical encoding of the formula, not the raw input
// bytes: each clause's literals are sorted (cnf.SortClause) and the clause
// list itself is sorted, so two inputs differing only in clause order or
// in-clause literal order hash identically (spec.md S4.6).
func runGBDHash(r io.Reader, w io.Writer) error {
	f, err := dimacs.Read(r)
	if err != nil {
		return gbdc.WrapError("gbdhash", "reading formula", err)
	}
	sum := sha256.Sum256(canonicalBytes(f))
	_, err = fmt.Fprintf(w, "%x\n", sum)
	return err
}

// canonicalBytes renders f as a DIMACS document whose clause order and
// per-clause literal order depend only on the formula's content, never on
// input order, so it is a stable basis for a content hash.
func canonicalBytes(f *cnf.Formula) []byte {
	sorted := make([][]cnf.Literal, len(f.Clauses))
	for i, c := range f.Clauses {
		sorted[i] = cnf.SortClause(c.Literals)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return lessLiterals(sorted[i], sorted[j])
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "p cnf %d %d\n", f.NumVars, len(sorted))
	for _, lits := range sorted {
		dimacs.WriteClause(&buf, lits)
	}
	return buf.Bytes()
}

// lessLiterals orders two already-sorted literal slices lexicographically,
// shorter-is-smaller on a common prefix match.
func lessLiterals(a, b []cnf.Literal) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func runExtract(r io.Reader, w io.Writer, cfg config) error {
	f, err := dimacs.Read(r)
	if err != nil {
		return gbdc.WrapError("extract", "reading formula", err)
	}
	gf, err := analyze(f, cfg)
	if err != nil {
		return gbdc.WrapError("extract", "recognizing gates", err)
	}
	names := features.Names()
	record := features.Extract(f, gf)
	for i, v := range record {
		if i > 0 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s=%g", names[i], v); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

func runGates(r io.Reader, w io.Writer, cfg config) error {
	f, err := dimacs.Read(r)
	if err != nil {
		return gbdc.WrapError("gates", "reading formula", err)
	}
	gf, err := analyze(f, cfg)
	if err != nil {
		return gbdc.WrapError("gates", "recognizing gates", err)
	}
	if err := writeGateFormula(w, gf); err != nil {
		return gbdc.WrapError("gates", "writing gate formula", err)
	}
	return nil
}

// writeGateFormula prints every recognised gate as "<output> : <forward> ;
// <backward>" (spec.md S6), one per line, followed by the remainder clauses
// each on their own "r: <clause>" line.
func writeGateFormula(w io.Writer, gf *gate.Formula) error {
	for _, g := range gf.Gates() {
		if _, err := fmt.Fprintf(w, "%d : ", g.Output.Dimacs()); err != nil {
			return err
		}
		if err := writeClauseList(w, g.Forward); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "; "); err != nil {
			return err
		}
		if err := writeClauseList(w, g.Backward); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, c := range gf.Remainder {
		if _, err := fmt.Fprint(w, "r: "); err != nil {
			return err
		}
		if err := dimacs.WriteClause(w, c.Literals); err != nil {
			return err
		}
	}
	return nil
}

func writeClauseList(w io.Writer, clauses []*cnf.Clause) error {
	for i, c := range clauses {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// runSolve runs one-shot satisfiability on the formula and prints the
// DIMACS-style SATISFIABLE/UNSATISFIABLE verdict plus a model line when SAT
// (spec.md S4.7, a domain-expansion tool that exercises the same oracle the
// semantic classifier uses).
func runSolve(r io.Reader, w io.Writer) error {
	f, err := dimacs.Read(r)
	if err != nil {
		return gbdc.WrapError("solve", "reading formula", err)
	}
	oc := oracle.New()
	defer oc.Release()
	for _, c := range f.Clauses {
		for _, l := range c.Literals {
			oc.Add(l)
		}
		oc.AddTerminator()
	}
	switch oc.Solve() {
	case gate.ResultSAT:
		if _, err := fmt.Fprintln(w, "SATISFIABLE"); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "v "); err != nil {
			return err
		}
		for v := 1; v <= f.NumVars; v++ {
			lit := cnf.NewLiteral(cnf.Variable(v), false)
			if oc.Value(lit) {
				if _, err := fmt.Fprintf(w, "%d ", v); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "%d ", -v); err != nil {
					return err
				}
			}
		}
		_, err = fmt.Fprintln(w, "0")
		return err
	case gate.ResultUNSAT:
		_, err = fmt.Fprintln(w, "UNSATISFIABLE")
		return err
	default:
		_, err = fmt.Fprintln(w, "UNKNOWN")
		return err
	}
}

// analyze runs one Analyzer over f, passing Repeat through as MaxPasses so
// the analyzer's own outer root-re-estimation loop (spec.md S4.2: after
// each pass, re-estimate roots over the progressively-reduced index) runs
// up to Repeat times, rather than restarting from fresh state Repeat times.
func analyze(f *cnf.Formula, cfg config) (*gate.Formula, error) {
	idx := cnfindex.NewOccurrence(f)
	gf := gate.NewFormula(f.NumVars)
	var oc gate.Oracle
	if cfg.Semantic {
		oc = oracle.New()
	}
	a := gate.NewAnalyzer(idx, gf, oc, gate.Config{
		Patterns:  cfg.Patterns,
		Semantic:  cfg.Semantic,
		MaxPasses: cfg.Repeat,
	})
	if err := a.Analyze(); err != nil {
		return nil, err
	}
	return gf, nil
}
