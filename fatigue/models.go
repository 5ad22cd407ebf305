package fatigue

// Xia is the three-compartment muscle fatigue model of Xia and Frey Law.
// Each element tracks an activated (ma), resting (mr) and fatigued (mf)
// fraction, exchanged at the configured rates.
type Xia struct {
	// DevelopRate is how fast resting units activate on demand (LD).
	DevelopRate float64
	// RecoveryRate is how fast activated units return to rest (LR).
	RecoveryRate float64
	// FatigueRate is how fast activated units fatigue (F).
	FatigueRate float64
	// RestRate is how fast fatigued units recover (R).
	RestRate float64
}

// NewXia returns a Xia model with the given exchange rates.
func NewXia(developRate, recoveryRate, fatigueRate, restRate float64) *Xia {
	return &Xia{
		DevelopRate:  developRate,
		RecoveryRate: recoveryRate,
		FatigueRate:  fatigueRate,
		RestRate:     restRate,
	}
}

// StateSuffixes returns the three compartment names.
func (x *Xia) StateSuffixes() []string {
	return []string{"ma", "mr", "mf"}
}

// StateColors returns one color per compartment.
func (x *Xia) StateColors() []string {
	return []string{"tab:green", "tab:orange", "tab:red"}
}

// XiaTau decomposes a torque into its negative and positive sides, each
// with its own Xia model. With Split set, each side also gets its own
// control variable; otherwise both sides share the original control.
type XiaTau struct {
	Minus *Xia
	Plus  *Xia
	Split bool
}

// NewXiaTau returns a torque decomposition over the two Xia models.
func NewXiaTau(minus, plus *Xia, splitControls bool) *XiaTau {
	return &XiaTau{Minus: minus, Plus: plus, Split: splitControls}
}

// MetaSuffixes returns the two torque sides.
func (x *XiaTau) MetaSuffixes() []string {
	return []string{"minus", "plus"}
}

// Model returns the side's Xia model.
func (x *XiaTau) Model(meta string) Model {
	switch meta {
	case "minus":
		return x.Minus
	case "plus":
		return x.Plus
	default:
		return nil
	}
}

// SplitControls reports whether each side gets its own control.
func (x *XiaTau) SplitControls() bool {
	return x.Split
}

// MultiInterface reports false: the sides are exposed under suffixed
// names.
func (x *XiaTau) MultiInterface() bool {
	return false
}

// ControlColors returns one color per side.
func (x *XiaTau) ControlColors() []string {
	return []string{"tab:orange", "tab:green"}
}

// PlotFactors negates the minus side so both sides share one axis.
func (x *XiaTau) PlotFactors() []float64 {
	return []float64{-1, 1}
}

// Effort is a single-compartment perceived-effort model. It is its own
// single-variant set presented behind the original variable name, sharing
// the original control.
type Effort struct {
	// Threshold is the effort level below which perception recovers.
	Threshold float64
	// Factor scales how fast perceived effort accumulates.
	Factor float64
}

// NewEffort returns an effort-perception model.
func NewEffort(threshold, factor float64) *Effort {
	return &Effort{Threshold: threshold, Factor: factor}
}

// StateSuffixes returns the single perceived-effort compartment.
func (e *Effort) StateSuffixes() []string {
	return []string{"mf"}
}

// StateColors returns the compartment's color.
func (e *Effort) StateColors() []string {
	return []string{"tab:brown"}
}

// MetaSuffixes returns the single variant.
func (e *Effort) MetaSuffixes() []string {
	return []string{"effort"}
}

// Model returns the model itself for its only variant.
func (e *Effort) Model(meta string) Model {
	if meta != "effort" {
		return nil
	}
	return e
}

// SplitControls reports false: the variant shares the original control.
func (e *Effort) SplitControls() bool {
	return false
}

// MultiInterface reports true: the variant hides behind the original
// variable name.
func (e *Effort) MultiInterface() bool {
	return true
}

// ControlColors returns the shared control's color.
func (e *Effort) ControlColors() []string {
	return []string{"tab:blue"}
}

// PlotFactors returns the single variant's factor.
func (e *Effort) PlotFactors() []float64 {
	return []float64{1}
}
