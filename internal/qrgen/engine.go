package qrgen

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
	rscqr "rsc.io/qr"
)

// Level is a QR error-correction tier.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	// LevelH recovers from roughly 30% symbol damage at the cost of capacity.
	LevelH Level = "H"
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelL, LevelM, LevelQ, LevelH:
		return l, nil
	}
	return "", fmt.Errorf("unknown error-correction level %q", s)
}

// Matrix is a square grid of modules without quiet zone; true means dark.
type Matrix [][]bool

// Size returns the number of modules per side.
func (m Matrix) Size() int {
	return len(m)
}

// Engine turns text into a module matrix.
type Engine interface {
	Name() string
	Matrix(text string, level Level) (Matrix, error)
}

// Engine names accepted by configuration.
const (
	EngineSkip2 = "skip2"
	EngineRSC   = "rsc"
)

// EngineNames lists the registered engines.
func EngineNames() []string {
	return []string{EngineSkip2, EngineRSC}
}

// NewEngine returns the engine registered under name; the empty name selects skip2.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", EngineSkip2:
		return Skip2Engine{}, nil
	case EngineRSC:
		return RSCEngine{}, nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

// Skip2Engine encodes with github.com/skip2/go-qrcode.
type Skip2Engine struct{}

func (Skip2Engine) Name() string { return EngineSkip2 }

func (Skip2Engine) Matrix(text string, level Level) (Matrix, error) {
	q, err := goqrcode.New(text, skip2Level(level))
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return Matrix(q.Bitmap()), nil
}

func skip2Level(l Level) goqrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return goqrcode.Low
	case LevelM:
		return goqrcode.Medium
	case LevelQ:
		return goqrcode.High
	default:
		return goqrcode.Highest
	}
}

// RSCEngine encodes with rsc.io/qr.
type RSCEngine struct{}

func (RSCEngine) Name() string { return EngineRSC }

func (RSCEngine) Matrix(text string, level Level) (Matrix, error) {
	code, err := rscqr.Encode(text, rscLevel(level))
	if err != nil {
		return nil, err
	}
	m := make(Matrix, code.Size)
	for y := 0; y < code.Size; y++ {
		m[y] = make([]bool, code.Size)
		for x := 0; x < code.Size; x++ {
			m[y][x] = code.Black(x, y)
		}
	}
	return m, nil
}

func rscLevel(l Level) rscqr.Level {
	switch l {
	case LevelL:
		return rscqr.L
	case LevelM:
		return rscqr.M
	case LevelQ:
		return rscqr.Q
	default:
		return rscqr.H
	}
}
