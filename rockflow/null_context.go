package rockflow

// NullContext is the empty reference context: it holds no attributes and
// accepts no writes. Hosts can embed it to cover accessors they do not back
// with data, making "no data available" an explicit choice.
//
// Scalar getters return the caller-supplied default, list getters return
// empty slices, and SetInt reports StatusOK without mutating anything.
// NullContext does not implement ItemSource.
type NullContext struct{}

var _ Context = NullContext{}

func (NullContext) GetInt(_ string, def int64) int64 { return def }

func (NullContext) GetDouble(_ string, def float64) float64 { return def }

func (NullContext) GetString(_ string, def string) string { return def }

func (NullContext) GetIntList(string) []int64 { return []int64{} }

func (NullContext) GetDoubleList(string) []float64 { return []float64{} }

func (NullContext) GetStringList(string) []string { return []string{} }

func (NullContext) SetInt(string, int64) Status { return StatusOK }
