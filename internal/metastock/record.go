// Package metastock decodes the MetaStock binary format family: the
// EMASTER, XMASTER and MASTER index layouts, the per-symbol DOP column
// descriptions, and the F<n>.DAT/F<n>.MWD price-data files.
package metastock

// SymbolRecord is the index entry for one symbol. FileNum keys the
// per-symbol data files (F<n>.DAT or F<n>.MWD, plus F<n>.DOP).
type SymbolRecord struct {
	FileNum   int
	NumFields int   // declared field count; a non-zero BitFields overrides it
	BitFields uint8 // 0 = not stored by this index layout
	Symbol    string
	Name      string
	TimeFrame byte
	FirstDate int32 // YYYYMMDD for EMASTER, raw stored value otherwise
	LastDate  int32
}
