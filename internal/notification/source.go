package notification

// Source selects where snapshots are read from.
type Source string

const (
	SourceHTTP     Source = "http"
	SourcePostgres Source = "postgres"
	SourceSQLite   Source = "sqlite"
)

func (s Source) IsValid() bool {
	return s == SourceHTTP || s == SourcePostgres || s == SourceSQLite
}
