package sheet

// Sink consumes a finished document. Implementations persist it in some
// external form; the packer itself never touches storage.
type Sink interface {
	WriteDocument(doc *Document) error
}
