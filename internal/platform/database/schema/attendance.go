package schema

// AttendanceTable represents one 'attendance.*' population table.
// Meeting flag columns are population specific and named by the flag itself.
type AttendanceTable struct {
	Table       string
	ID          string
	Name        string
	StarID      string
	PrakarID    string
	SanghatanID string
	DayitvaID   string
	KshetraID   string
	PrantID     string
	Kendra      string
	Mobile1     string
	Mobile2     string
	Email       string
	Gender      string
	Attendance  string
	Year        string
	CreatedAt   string
	UpdatedAt   string
}

// Columns returns the shared columns in insert/scan order (flags excluded).
func (t AttendanceTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.StarID, t.PrakarID, t.SanghatanID, t.DayitvaID, t.KshetraID, t.PrantID,
		t.Kendra, t.Mobile1, t.Mobile2, t.Email, t.Gender, t.Attendance, t.Year,
	}
}

func attendanceTable(name string) AttendanceTable {
	return AttendanceTable{
		Table:       "attendance." + name,
		ID:          "id",
		Name:        "name",
		StarID:      "star_id",
		PrakarID:    "prakar_id",
		SanghatanID: "sanghatan_id",
		DayitvaID:   "dayitva_id",
		KshetraID:   "kshetra_id",
		PrantID:     "prant_id",
		Kendra:      "kendra",
		Mobile1:     "mobile_no_1",
		Mobile2:     "mobile_no_2",
		Email:       "email",
		Gender:      "gender",
		Attendance:  "attendance",
		Year:        "year",
		CreatedAt:   "createdat",
		UpdatedAt:   "updatedat",
	}
}

var (
	AttendancePratinidhiSabha = attendanceTable("pratinidhi_sabha")
	AttendancePrantPracharak  = attendanceTable("prant_pracharak")
	AttendanceKaryakariMandal = attendanceTable("karyakari_mandal")
)
