package entity

// CallPurpose tells why an outbound call was placed.
type CallPurpose string

const (
	PurposeEnable               CallPurpose = "enable"
	PurposeDisable              CallPurpose = "disable"
	PurposeConfirmIncoming      CallPurpose = "confirm_incoming"
	PurposeConfirmOutgoing      CallPurpose = "confirm_outgoing"
	PurposeTroubleshootOutgoing CallPurpose = "troubleshoot_outgoing"
	PurposeTroubleshootIncoming CallPurpose = "troubleshoot_incoming"
)

// CallRequest is one outbound call. Exactly one of Digits or MessageURL is set.
type CallRequest struct {
	Purpose    CallPurpose
	To         string
	Digits     string
	MessageURL string
}

// PhoneActionResult is the outcome of one outbound call attempt.
type PhoneActionResult struct {
	Purpose CallPurpose
	To      string
	CallID  string
	Success bool
	// Skipped is set when the call was not placed on purpose (passive hours).
	Skipped bool
	Reason  string
}

// Succeeded builds the result of a placed call.
func Succeeded(req CallRequest, callID string) PhoneActionResult {
	return PhoneActionResult{Purpose: req.Purpose, To: req.To, CallID: callID, Success: true}
}

// Failed builds the result of a call that could not be placed.
func Failed(req CallRequest, reason string) PhoneActionResult {
	return PhoneActionResult{Purpose: req.Purpose, To: req.To, Reason: reason}
}

// Skipped builds the result of a call that was deliberately not placed.
// A skipped call counts as successful.
func Skipped(purpose CallPurpose, to, reason string) PhoneActionResult {
	return PhoneActionResult{Purpose: purpose, To: to, Success: true, Skipped: true, Reason: reason}
}
