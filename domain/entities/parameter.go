package entities

// MaxTextLen is the size, including the terminating NUL, of the fixed text
// buffers the host fills for names and formatted values.
const MaxTextLen = 256

// ParameterDescriptor is one effect parameter as read by a batch.
type ParameterDescriptor struct {
	Name      string  `json:"name"`
	Formatted string  `json:"formatted"`
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// ParameterChange requests a new normalized value for one parameter.
// TargetIndex is only meaningful for multi-target batches.
type ParameterChange struct {
	TargetIndex    int     `json:"target_index"`
	FeatureIndex   int     `json:"feature_index"`
	ParameterIndex int     `json:"parameter_index"`
	Value          float64 `json:"value"`
}

// FormatRequest asks the host to render a value as display text without
// changing the parameter.
type FormatRequest struct {
	TargetIndex    int     `json:"target_index"`
	FeatureIndex   int     `json:"feature_index"`
	ParameterIndex int     `json:"parameter_index"`
	Value          float64 `json:"value"`
}

// FormatResult is the display text produced for one FormatRequest.
// OK is false when the host produced no text for the request.
type FormatResult struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// FeatureInfo describes one effect instance on a target.
type FeatureInfo struct {
	Name       string `json:"name"`
	Index      int    `json:"index"`
	Parameters int    `json:"parameters"`
}

// TargetRead selects the feature to read on one target of a multi-target batch.
type TargetRead struct {
	Target       Target `json:"-"`
	FeatureIndex int    `json:"feature_index"`
}
