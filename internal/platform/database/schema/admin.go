package schema

// AdminSettingTable represents the 'admin.setting' table.
type AdminSettingTable struct {
	Table     string
	ID        string
	Value     string
	CreatedAt string
	UpdatedAt string
}

var AdminSetting = AdminSettingTable{
	Table:     "admin.setting",
	ID:        "id",
	Value:     "value",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// AdminSubmissionTable represents the 'admin.submission' table.
type AdminSubmissionTable struct {
	Table        string
	ID           string
	SystemUserID string
	Name         string
	Email        string
	Date         string
}

var AdminSubmission = AdminSubmissionTable{
	Table:        "admin.submission",
	ID:           "id",
	SystemUserID: "system_user_id",
	Name:         "name",
	Email:        "email",
	Date:         "date",
}
