package models

// All lists every persistence model in creation order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&PermissionModel{},
		&RolePermissionModel{},
		&UserRoleModel{},
		&CustomerModel{},
		&SupportModel{},
		&TicketModel{},
		&TicketDocumentModel{},
		&TicketCommentModel{},
		&TicketCommentAttachmentModel{},
		&TicketActivityModel{},
	}
}
