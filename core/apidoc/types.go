package apidoc

// Record is the documented surface of one exported name: one formatted
// signature per overload, in source order.
type Record struct {
	Module     string   `json:"module"`
	API        string   `json:"api"`
	Kind       string   `json:"kind"`
	Signatures []string `json:"signatures"`
}

// Document is the full extracted API surface: records in module discovery
// order, then export enumeration order. Records are never deduplicated; two
// modules exporting the same name independently both appear.
type Document struct {
	Records []Record
}
