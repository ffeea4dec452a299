package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 15
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderAcceptLanguage = "Accept-Language"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRoles = "user_roles"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers                    = "users"
	TableRoles                    = "roles"
	TableUserRoles                = "user_roles"
	TablePermissions              = "permissions"
	TableRolePermissions          = "role_permissions"
	TableCustomers                = "customers"
	TableSupports                 = "supports"
	TableTickets                  = "tickets"
	TableTicketDocuments          = "ticket_documents"
	TableTicketComments           = "ticket_comments"
	TableTicketCommentAttachments = "ticket_comment_attachments"
	TableTicketActivities         = "ticket_activities"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"

	// Export
	ExportTimeLayout     = "02/01/2006 15:04"
	ExportFilenameLayout = "20060102_150405"
)

// Version is stamped at build time via -ldflags "-X .../constants.Version=...".
var Version = "dev"
