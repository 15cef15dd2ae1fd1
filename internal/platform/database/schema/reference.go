package schema

// ReferenceTable describes one of the six 'reference.*' lookup tables.
// They share a shape; 'reference.prant' adds [PrantTable.KshetraID].
type ReferenceTable struct {
	Table     string
	ID        string
	Name      string
	Active    string
	CreatedAt string
	UpdatedAt string
}

// Columns returns the shared column list in scan order.
func (t ReferenceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Active}
}

// PrantTable represents the 'reference.prant' table.
type PrantTable struct {
	ReferenceTable
	KshetraID string
}

func referenceTable(name string) ReferenceTable {
	return ReferenceTable{
		Table:     "reference." + name,
		ID:        "id",
		Name:      "name",
		Active:    "active",
		CreatedAt: "createdat",
		UpdatedAt: "updatedat",
	}
}

var (
	RefStar      = referenceTable("star")
	RefPrakar    = referenceTable("prakar")
	RefSanghatan = referenceTable("sanghatan")
	RefDayitva   = referenceTable("dayitva")
	RefKshetra   = referenceTable("kshetra")
	RefPrant     = PrantTable{ReferenceTable: referenceTable("prant"), KshetraID: "kshetra_id"}
)
