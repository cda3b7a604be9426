// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ngx

import "fmt"

// Result is a status code returned by an NGX entry point.
//
// Failed results implement error, so a Result can be returned directly from
// a Runtime method and later recovered with errors.As.
type Result uint32

// Status codes defined by nvsdk_ngx_defs.h.
const (
	ResultSuccess Result = 0x1
	ResultFail    Result = 0xBAD00000

	ResultFeatureNotSupported       = ResultFail | 1
	ResultPlatformError             = ResultFail | 2
	ResultFeatureAlreadyExists      = ResultFail | 3
	ResultFeatureNotFound           = ResultFail | 4
	ResultInvalidParameter          = ResultFail | 5
	ResultScratchBufferTooSmall     = ResultFail | 6
	ResultNotInitialized            = ResultFail | 7
	ResultUnsupportedInputFormat    = ResultFail | 8
	ResultRWFlagMissing             = ResultFail | 9
	ResultMissingInput              = ResultFail | 10
	ResultUnableToInitializeFeature = ResultFail | 11
	ResultOutOfDate                 = ResultFail | 12
	ResultOutOfGPUMemory            = ResultFail | 13
	ResultUnsupportedFormat         = ResultFail | 14
	ResultUnableToWriteToAppData    = ResultFail | 15
	ResultUnsupportedParameter      = ResultFail | 16
	ResultDenied                    = ResultFail | 17
	ResultNotImplemented            = ResultFail | 18
)

const resultFailMask = 0xFFF00000

var resultMessages = map[Result]string{
	ResultFail:                      "generic failure",
	ResultFeatureNotSupported:       "feature not supported on this hardware",
	ResultPlatformError:             "platform error, check the NGX log",
	ResultFeatureAlreadyExists:      "feature with given parameters already exists",
	ResultFeatureNotFound:           "feature with provided handle does not exist",
	ResultInvalidParameter:          "invalid parameter",
	ResultScratchBufferTooSmall:     "scratch buffer too small",
	ResultNotInitialized:            "runtime not initialized",
	ResultUnsupportedInputFormat:    "unsupported input format",
	ResultRWFlagMissing:             "output resource is missing the read-write flag",
	ResultMissingInput:              "required input resource is missing",
	ResultUnableToInitializeFeature: "unable to initialize feature",
	ResultOutOfDate:                 "runtime or driver out of date",
	ResultOutOfGPUMemory:            "out of GPU memory",
	ResultUnsupportedFormat:         "unsupported format",
	ResultUnableToWriteToAppData:    "unable to write to application data path",
	ResultUnsupportedParameter:      "unsupported parameter",
	ResultDenied:                    "feature denied for this application",
	ResultNotImplemented:            "not implemented",
}

// Failed reports whether r is in the failure range.
func (r Result) Failed() bool {
	return uint32(r)&resultFailMask == uint32(ResultFail)
}

// Error returns a readable description of the status code.
func (r Result) Error() string {
	if msg, ok := resultMessages[r]; ok {
		return fmt.Sprintf("ngx: %s (0x%08X)", msg, uint32(r))
	}
	if !r.Failed() {
		return fmt.Sprintf("ngx: success (0x%08X)", uint32(r))
	}
	return fmt.Sprintf("ngx: unknown failure (0x%08X)", uint32(r))
}

// Check converts a status code into an error.
// Non-failure codes, including ResultSuccess, return nil.
func Check(r Result) error {
	if r.Failed() {
		return r
	}
	return nil
}
