package fake

import "github.com/aws/smithy-go"

// APIError returns an error carrying an AWS error code, as the SDK returns
// for failed requests.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message, Fault: smithy.FaultClient}
}
