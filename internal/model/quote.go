package model

// Series identifies one symbol's decoded output stream.
type Series struct {
	Symbol  string
	Name    string
	Columns []string // display names of emitting slots, in slot order
}

// Row is one decoded data-file record. Fields aligns with
// Series.Columns; Quote is the typed view used by structured savers.
type Row struct {
	Fields []string
	Quote  Quote
}

// Quote is one bar of a symbol's history, shared by the savers for
// json/parquet serialization. Date packs as YYYYMMDD, Time as HHMMSS.
type Quote struct {
	Date   int32   `json:"date" parquet:"date"`
	Time   int32   `json:"time,omitempty" parquet:"time,optional"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume int64   `json:"volume" parquet:"volume"`
	OI     int64   `json:"oi,omitempty" parquet:"oi,optional"` // open interest
}
