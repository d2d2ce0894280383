package rules

// South African VAT treatment constants. The standard rate is a domain
// constant, not configurable per call.
const (
	StandardVATRate = 15.0
	ExemptVATRate   = 0.0

	VATTypeStandard  = "Standard Rate"
	VATTypeExempt    = "Exempt"
	VATTypeZeroRated = "Zero-Rated"
)
