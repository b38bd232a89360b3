package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies a toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0 positioning above the stock
	MoveFeed                    // G1 cutting move in the XY plane
	MovePlunge                  // G1 with Z decreasing, entering material
	MoveRetract                 // Z increasing, leaving material
)

// Move is a single parsed movement with absolute start and end positions.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

var coordRe = regexp.MustCompile(`([XYZF])([-]?\d+\.?\d*)`)

// Parse reads a G-code program into structured moves. It tracks absolute
// position state line by line and classifies each G0/G1 command by its
// movement characteristics. Non-motion lines (M codes, modal G codes,
// comments) are skipped.
func Parse(code string) []Move {
	var moves []Move

	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComments(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		isRapid := hasCommand(upper, "G0") || hasCommand(upper, "G00")
		isFeed := hasCommand(upper, "G1") || hasCommand(upper, "G01")
		if !isRapid && !isFeed {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			}
		}

		moves = append(moves, Move{
			Type:     classifyMove(isRapid, curZ, newZ, curX, curY, newX, newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		}
	}
	return strings.TrimSpace(line)
}

func hasCommand(upper, cmd string) bool {
	return upper == cmd || strings.HasPrefix(upper, cmd+" ")
}

// classifyMove distinguishes plunges and retracts from plain feed moves
// by the Z delta and the presence of XY travel.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// Stats summarizes a parsed program for previews and time estimates.
type Stats struct {
	Moves       int
	Plunges     int
	CutLength   float64 // mm traveled while feeding
	RapidLength float64 // mm traveled at rapid speed
	MinX, MinY  float64
	MaxX, MaxY  float64
	// EstimatedMinutes assumes programmed feed rates and rapidRate
	// for G0 travel. It ignores acceleration.
	EstimatedMinutes float64
}

// rapidRate approximates G0 travel speed for time estimates, mm/min.
const rapidRate = 5000.0

// Summarize computes program statistics from parsed moves.
func Summarize(moves []Move) Stats {
	var s Stats
	s.Moves = len(moves)
	if len(moves) == 0 {
		return s
	}

	s.MinX, s.MinY = math.Inf(1), math.Inf(1)
	s.MaxX, s.MaxY = math.Inf(-1), math.Inf(-1)

	for _, m := range moves {
		s.MinX = math.Min(s.MinX, math.Min(m.FromX, m.ToX))
		s.MinY = math.Min(s.MinY, math.Min(m.FromY, m.ToY))
		s.MaxX = math.Max(s.MaxX, math.Max(m.FromX, m.ToX))
		s.MaxY = math.Max(s.MaxY, math.Max(m.FromY, m.ToY))

		dx := m.ToX - m.FromX
		dy := m.ToY - m.FromY
		dz := m.ToZ - m.FromZ
		length := math.Sqrt(dx*dx + dy*dy + dz*dz)

		switch m.Type {
		case MovePlunge:
			s.Plunges++
			if m.FeedRate > 0 {
				s.EstimatedMinutes += length / m.FeedRate
			}
		case MoveFeed:
			s.CutLength += length
			if m.FeedRate > 0 {
				s.EstimatedMinutes += length / m.FeedRate
			}
		default:
			s.RapidLength += length
			s.EstimatedMinutes += length / rapidRate
		}
	}
	return s
}
