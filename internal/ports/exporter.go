package ports

type ExportItem struct {
	Path        string
	SourceText  string
	Translation string
}

type Exporter interface {
	Format() string
	Export(locale string, items []ExportItem) ([]byte, error)
}
