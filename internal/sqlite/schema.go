package sqlite

// Schema DDL. Every collection shares one table; a row's columns live in
// body as a JSON object and are reached with json_extract.
const (
	createRecords = `CREATE TABLE records (
    collection TEXT NOT NULL,
    row_id TEXT NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (collection, row_id)
);`

	createCollectionIndex = `CREATE INDEX idx_records_collection ON records(collection);`
)

// schemaStatements lists the DDL executed on Attach, in order.
var schemaStatements = []string{
	createRecords,
	createCollectionIndex,
}

// dbFileName is the SQLite file created inside DataDir. It is rebuilt from
// the JSONL files on every Attach.
const dbFileName = "foodlog.db"

// jsonlExt is the extension of per-collection data files.
const jsonlExt = ".jsonl"
