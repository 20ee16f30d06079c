// Package errors provides the failure taxonomy shared by every component of
// the service and the table that maps it onto the HTTP wire contract.
//
// Components return *AppError values tagged with an ErrorCode. Classify is the
// single translation point from an error to a status code and ErrorResponse.
package errors
