// Package dimacs reads and writes the DIMACS CNF text format consumed and
// produced by the gbdc dispatcher. Its internal design is intentionally
// uninteresting (straightforward token scanning): the gate recognizer only
// ever sees the cnf.Formula this package produces.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cnftools/gbdc"
	"github.com/cnftools/gbdc/cnf"
)

// scanner is a minimal token scanner over DIMACS text: comments starting
// with 'c' run to end of line, a single 'p cnf V C' header declares sizes,
// and every other token is a signed integer. Literals may be split across
// lines; only a comment forces a line boundary. Grounded on the token-at-a-
// time style of the reference implementation's StreamBuffer (see
// original_source/src/Normalize.h).
type scanner struct {
	r    *bufio.Reader
	line int
}

func newScanner(r io.Reader) *scanner {
	return &scanner{r: bufio.NewReader(r), line: 1}
}

func (s *scanner) peek() (byte, bool) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (s *scanner) next() (byte, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, false
	}
	if b == '\n' {
		s.line++
	}
	return b, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (s *scanner) skipWhitespace() {
	for {
		b, ok := s.peek()
		if !ok || !isSpace(b) {
			return
		}
		s.next()
	}
}

func (s *scanner) skipLine() {
	for {
		b, ok := s.next()
		if !ok || b == '\n' {
			return
		}
	}
}

// readToken reads a maximal run of non-whitespace bytes.
func (s *scanner) readToken() (string, bool) {
	var buf []byte
	for {
		b, ok := s.peek()
		if !ok || isSpace(b) {
			break
		}
		s.next()
		buf = append(buf, b)
	}
	if len(buf) == 0 {
		return "", false
	}
	return string(buf), true
}

func (s *scanner) readInt() (int, error) {
	tok, ok := s.readToken()
	if !ok {
		return 0, io.EOF
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, gbdc.WrapError("dimacs.Read", fmt.Sprintf("line %d: invalid integer token %q", s.line, tok), err)
	}
	return n, nil
}

// Read parses a DIMACS CNF document. Tautological clauses (a literal and its
// negation) are discarded; duplicate literals within a clause are discarded;
// surviving clauses are kept in insertion order (spec.md S6).
func Read(r io.Reader) (*cnf.Formula, error) {
	f, _, err := readWithDeclaredCount(r)
	return f, err
}

// readWithDeclaredCount additionally reports the clause count declared by
// the input's own "p cnf V C" header, which Normalize must echo verbatim
// even when tautological clauses are later dropped from the body.
func readWithDeclaredCount(r io.Reader) (*cnf.Formula, int, error) {
	s := newScanner(r)
	f := &cnf.Formula{}
	var declaredVars, declaredClauses int
	headerSeen := false

	for {
		s.skipWhitespace()
		b, ok := s.peek()
		if !ok {
			break
		}
		switch b {
		case 'c':
			s.skipLine()
		case 'p':
			if headerSeen {
				return nil, 0, gbdc.NewError("dimacs.Read", fmt.Sprintf("duplicate problem line at line %d", s.line))
			}
			s.next() // 'p'
			s.skipWhitespace()
			tok, ok := s.readToken()
			if !ok || tok != "cnf" {
				return nil, 0, gbdc.NewError("dimacs.Read", fmt.Sprintf("expected \"cnf\" in problem line at line %d", s.line))
			}
			s.skipWhitespace()
			var err error
			declaredVars, err = s.readInt()
			if err != nil {
				return nil, 0, gbdc.WrapError("dimacs.Read", "invalid variable count", err)
			}
			s.skipWhitespace()
			declaredClauses, err = s.readInt()
			if err != nil {
				return nil, 0, gbdc.WrapError("dimacs.Read", "invalid clause count", err)
			}
			f.NumVars = declaredVars
			f.Clauses = make([]*cnf.Clause, 0, declaredClauses)
			headerSeen = true
		default:
			if !headerSeen {
				return nil, 0, gbdc.NewError("dimacs.Read", fmt.Sprintf("clause before problem line at line %d", s.line))
			}
			lits, err := s.readClauseLiterals(declaredVars)
			if err != nil {
				return nil, 0, err
			}
			deduped, tautology := cnf.DedupeClause(lits)
			if tautology {
				continue
			}
			f.Clauses = append(f.Clauses, &cnf.Clause{ID: len(f.Clauses), Literals: deduped})
		}
	}

	if !headerSeen {
		return nil, 0, gbdc.NewError("dimacs.Read", "missing problem line")
	}
	return f, declaredClauses, nil
}

func (s *scanner) readClauseLiterals(declaredVars int) ([]cnf.Literal, error) {
	var lits []cnf.Literal
	for {
		s.skipWhitespace()
		n, err := s.readInt()
		if err != nil {
			return nil, gbdc.WrapError("dimacs.Read", "reading clause literal", err)
		}
		if n == 0 {
			return lits, nil
		}
		v := n
		if v < 0 {
			v = -v
		}
		if declaredVars > 0 && v > declaredVars {
			return nil, gbdc.NewError("dimacs.Read", fmt.Sprintf("literal %d exceeds declared variable count %d", n, declaredVars))
		}
		lits = append(lits, cnf.FromDimacs(n))
	}
}
