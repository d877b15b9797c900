/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrInvalidPrice indicates a price that is not a plain non-negative number once separators are removed.
	ErrInvalidPrice = 1008

	// ErrMissingField indicates that a required request field is empty. The message names the field.
	ErrMissingField = 1009
)

// 2xxx: Marketplace Resource Errors
const (
	ErrProductNotFound  = 2101
	ErrStreamNotFound   = 2201
	ErrChatRoomNotFound = 2301

	// ErrSelfChat indicates that a seller tried to open a chat room on their own product.
	ErrSelfChat = 2302

	ErrUserNotFound = 2401

	// ErrListKindNotFound indicates an unknown record list (anything but sales, purchases, favs).
	ErrListKindNotFound = 2402

	// ErrFileSizeTooLarge indicates that an uploaded image exceeds the size limit.
	ErrFileSizeTooLarge = 2501

	// ErrFileTypeInvalid indicates an image whose extension and MIME type are not allowed or disagree.
	ErrFileTypeInvalid = 2502
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates that the request has no authenticated session user.
	ErrUnauthorized = 3001

	// ErrForbidden indicates that the session user may not act on the resource.
	ErrForbidden = 3002

	// ErrTokenNotFound indicates that a login code does not exist or was already used.
	ErrTokenNotFound = 3003

	// ErrEmailTaken indicates that another account already owns the e-mail address.
	ErrEmailTaken = 3004

	// ErrPhoneTaken indicates that another account already owns the phone number.
	ErrPhoneTaken = 3005

	// ErrTicketInvalid indicates a missing, expired, or foreign live-room ticket.
	ErrTicketInvalid = 3006
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the object storage rejected an operation.
	ErrFileStorageFailed = 5001

	// ErrMailDeliveryFailed indicates that the login mail could not be handed to the provider.
	ErrMailDeliveryFailed = 5002
)
