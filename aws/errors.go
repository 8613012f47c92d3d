package aws

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

var accessDeniedCodes = []string{
	"AccessDeniedException",
	"AccessDenied",
	"UnrecognizedClientException",
	"SubscriptionRequiredException",
	"OptInRequired",
	"AuthFailure",
}

// wrapError converts err into a *cloud.Error for op, carrying the AWS error
// code and message when err came from the AWS API.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var cerr *cloud.Error
	if errors.As(err, &cerr) {
		return err
	}

	e := &cloud.Error{Op: op, Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.ErrorCode()
		e.Message = apiErr.ErrorMessage()
	}
	return e
}

// errorCode returns the AWS error code carried by err or an empty string.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	var cerr *cloud.Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return ""
}

func hasErrorCode(err error, codes ...string) bool {
	code := errorCode(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func isAccessDenied(err error) bool {
	return hasErrorCode(err, accessDeniedCodes...)
}
