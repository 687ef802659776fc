package block

// Mode is an AV1 prediction mode. The intra set is fully modeled; the
// inter set exists only as a syntax placeholder (IsInter), since this
// core never performs motion search (spec Non-goal).
type Mode int

const (
	DCPred Mode = iota
	VPred
	HPred
	D45Pred
	D135Pred
	D113Pred
	D157Pred
	D203Pred
	D67Pred
	SmoothPred
	SmoothVPred
	SmoothHPred
	PaethPred

	// Inter modes begin here; NEARESTMV is the first.
	NearestMV
	NearMV
	ZeroMV
	NewMV
)

// IntraModes lists every intra prediction mode this core's mode decision
// searches, in the fixed order mode-decision ties break on (first
// candidate wins).
var IntraModes = []Mode{
	DCPred, VPred, HPred, D45Pred, D135Pred, D113Pred, D157Pred,
	D203Pred, D67Pred, SmoothPred, SmoothVPred, SmoothHPred, PaethPred,
}

// IsDirectional reports whether m is V_PRED, H_PRED or one of the
// angular D* modes, which carry an angle_delta syntax element for blocks
// >= 8x8.
func (m Mode) IsDirectional() bool {
	switch m {
	case VPred, HPred, D45Pred, D135Pred, D113Pred, D157Pred, D203Pred, D67Pred:
		return true
	default:
		return false
	}
}

// IsInter reports whether m belongs to the inter mode set. This core
// never selects an inter mode (no motion estimation), but encode_block
// still branches on it per spec 4.G′ step 2.
func (m Mode) IsInter() bool { return m >= NearestMV }

func (m Mode) String() string {
	switch m {
	case DCPred:
		return "DC_PRED"
	case VPred:
		return "V_PRED"
	case HPred:
		return "H_PRED"
	case D45Pred:
		return "D45_PRED"
	case D135Pred:
		return "D135_PRED"
	case D113Pred:
		return "D113_PRED"
	case D157Pred:
		return "D157_PRED"
	case D203Pred:
		return "D203_PRED"
	case D67Pred:
		return "D67_PRED"
	case SmoothPred:
		return "SMOOTH_PRED"
	case SmoothVPred:
		return "SMOOTH_V_PRED"
	case SmoothHPred:
		return "SMOOTH_H_PRED"
	case PaethPred:
		return "PAETH_PRED"
	case NearestMV:
		return "NEARESTMV"
	case NearMV:
		return "NEARMV"
	case ZeroMV:
		return "ZEROMV"
	case NewMV:
		return "NEWMV"
	default:
		return "MODE_INVALID"
	}
}
