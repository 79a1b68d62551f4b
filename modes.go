package finalenglish

// Mode is one of the three fixed presentation configurations controlling
// language mixing and reading direction.
type Mode string

const (
	// ModeExam shows English-only content, the way it appears on the exam.
	ModeExam Mode = "exam"
	// ModeStudy shows English content with Arabic help alongside.
	ModeStudy Mode = "study"
	// ModeBeginner shows Arabic-first bilingual content, right-to-left.
	ModeBeginner Mode = "beginner"
)

// DefaultMode is used whenever no valid mode is available.
const DefaultMode = ModeExam

// Direction is a text reading direction.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Modes lists all valid modes in display order.
var Modes = []Mode{ModeExam, ModeStudy, ModeBeginner}

// ParseMode validates a mode string. Invalid input yields DefaultMode and
// ok=false; callers substitute the default silently rather than failing.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeExam, ModeStudy, ModeBeginner:
		return Mode(s), true
	default:
		return DefaultMode, false
	}
}

// IsValid reports whether m is one of the three known modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeExam, ModeStudy, ModeBeginner:
		return true
	default:
		return false
	}
}

// Direction returns the reading direction for the mode.
func (m Mode) Direction() Direction {
	switch m {
	case ModeBeginner:
		return DirectionRTL
	case ModeExam, ModeStudy:
		return DirectionLTR
	default:
		return DirectionLTR
	}
}

// ShowsArabicHelp reports whether the mode displays Arabic help text.
func (m Mode) ShowsArabicHelp() bool {
	switch m {
	case ModeStudy, ModeBeginner:
		return true
	default:
		return false
	}
}

// IsBilingual reports whether the mode renders both languages together.
func (m Mode) IsBilingual() bool {
	return m == ModeBeginner
}

// Lang returns the primary content language code for the mode.
func (m Mode) Lang() string {
	if m == ModeBeginner {
		return "ar"
	}
	return "en"
}

func (m Mode) String() string {
	return string(m)
}
