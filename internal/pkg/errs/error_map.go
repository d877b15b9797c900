/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// Entries without a Status answer with 400 Bad Request.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrInvalidPrice:          {Code: ErrInvalidPrice, Message: "Price must be a whole number."},
	ErrMissingField:          {Code: ErrMissingField, Message: "%s is required."},

	// 2xxx: Marketplace Resource Errors
	ErrProductNotFound:  {Code: ErrProductNotFound, Message: "Product not found.", Status: http.StatusNotFound},
	ErrStreamNotFound:   {Code: ErrStreamNotFound, Message: "해당 제품은 존재하지 않습니다.", Status: http.StatusNotFound},
	ErrChatRoomNotFound: {Code: ErrChatRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrSelfChat:         {Code: ErrSelfChat, Message: "You cannot chat about your own product."},
	ErrUserNotFound:     {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrListKindNotFound: {Code: ErrListKindNotFound, Message: "Unknown list.", Status: http.StatusNotFound},
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Message: "File is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Message: "Only JPEG, PNG, WEBP and GIF images are allowed."},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:  {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:     {Code: ErrForbidden, Message: "You don't have permission to do that.", Status: http.StatusForbidden},
	ErrTokenNotFound: {Code: ErrTokenNotFound, Message: "Invalid or expired code.", Status: http.StatusNotFound},
	ErrEmailTaken:    {Code: ErrEmailTaken, Message: "Email already taken.", Status: http.StatusConflict},
	ErrPhoneTaken:    {Code: ErrPhoneTaken, Message: "Phone already in use.", Status: http.StatusConflict},
	ErrTicketInvalid: {Code: ErrTicketInvalid, Message: "Live ticket is invalid or expired.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed:  {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusBadGateway},
	ErrMailDeliveryFailed: {Code: ErrMailDeliveryFailed, Message: "We couldn't send your code. Please try again.", Status: http.StatusBadGateway},
}
