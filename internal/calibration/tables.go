package calibration

import "strip-analyzer/pkg/colorutil"

// Built-in products for the common 6-in-1 and 3-in-1 pool/spa test
// strips. Reference colors were sampled from manufacturer color charts
// under daylight illumination.
const (
	builtin6Name = "pool-6in1"
	builtin3Name = "pool-3in1"
)

func freeChlorineTable() Table {
	return Table{
		Key:  FreeChlorine,
		Name: "Free Chlorine",
		Unit: "ppm",
		Entries: []Entry{
			{RangeLow: 0, RangeHigh: 0.5, Ref: colorutil.RGB{R: 245, G: 240, B: 230}, Status: StatusLow},
			{RangeLow: 0.5, RangeHigh: 1, Ref: colorutil.RGB{R: 230, G: 200, B: 220}, Status: StatusLow},
			{RangeLow: 1, RangeHigh: 3, Ref: colorutil.RGB{R: 210, G: 150, B: 200}, Status: StatusOK},
			{RangeLow: 3, RangeHigh: 5, Ref: colorutil.RGB{R: 180, G: 100, B: 170}, Status: StatusOK},
			{RangeLow: 5, RangeHigh: 10, Ref: colorutil.RGB{R: 140, G: 60, B: 140}, Status: StatusHigh},
			{RangeLow: 10, RangeHigh: 20, Ref: colorutil.RGB{R: 100, G: 30, B: 110}, Status: StatusHigh},
		},
	}
}

func phTable() Table {
	return Table{
		Key:  PH,
		Name: "pH",
		Unit: "",
		Entries: []Entry{
			{RangeLow: 6.2, RangeHigh: 6.8, Ref: colorutil.RGB{R: 240, G: 150, B: 80}, Status: StatusLow},
			{RangeLow: 6.8, RangeHigh: 7.2, Ref: colorutil.RGB{R: 235, G: 120, B: 70}, Status: StatusOK},
			{RangeLow: 7.2, RangeHigh: 7.6, Ref: colorutil.RGB{R: 220, G: 90, B: 60}, Status: StatusOK},
			{RangeLow: 7.6, RangeHigh: 8.0, Ref: colorutil.RGB{R: 200, G: 60, B: 60}, Status: StatusHigh},
			{RangeLow: 8.0, RangeHigh: 8.4, Ref: colorutil.RGB{R: 180, G: 40, B: 70}, Status: StatusHigh},
		},
	}
}

func totalAlkalinityTable() Table {
	return Table{
		Key:  TotalAlkalinity,
		Name: "Total Alkalinity",
		Unit: "ppm",
		Entries: []Entry{
			{RangeLow: 0, RangeHigh: 40, Ref: colorutil.RGB{R: 240, G: 235, B: 160}, Status: StatusLow},
			{RangeLow: 40, RangeHigh: 80, Ref: colorutil.RGB{R: 190, G: 220, B: 140}, Status: StatusLow},
			{RangeLow: 80, RangeHigh: 120, Ref: colorutil.RGB{R: 140, G: 200, B: 150}, Status: StatusOK},
			{RangeLow: 120, RangeHigh: 180, Ref: colorutil.RGB{R: 90, G: 170, B: 160}, Status: StatusHigh},
			{RangeLow: 180, RangeHigh: 240, Ref: colorutil.RGB{R: 60, G: 130, B: 150}, Status: StatusHigh},
		},
	}
}

func totalChlorineTable() Table {
	return Table{
		Key:  TotalChlorine,
		Name: "Total Chlorine",
		Unit: "ppm",
		Entries: []Entry{
			{RangeLow: 0, RangeHigh: 0.5, Ref: colorutil.RGB{R: 250, G: 245, B: 200}, Status: StatusLow},
			{RangeLow: 0.5, RangeHigh: 1, Ref: colorutil.RGB{R: 230, G: 235, B: 160}, Status: StatusLow},
			{RangeLow: 1, RangeHigh: 3, Ref: colorutil.RGB{R: 190, G: 215, B: 120}, Status: StatusOK},
			{RangeLow: 3, RangeHigh: 5, Ref: colorutil.RGB{R: 150, G: 190, B: 110}, Status: StatusOK},
			{RangeLow: 5, RangeHigh: 10, Ref: colorutil.RGB{R: 110, G: 160, B: 120}, Status: StatusHigh},
			{RangeLow: 10, RangeHigh: 20, Ref: colorutil.RGB{R: 80, G: 130, B: 130}, Status: StatusHigh},
		},
	}
}

func totalHardnessTable() Table {
	return Table{
		Key:  TotalHardness,
		Name: "Total Hardness",
		Unit: "ppm",
		Entries: []Entry{
			{RangeLow: 0, RangeHigh: 50, Ref: colorutil.RGB{R: 230, G: 120, B: 110}, Status: StatusLow},
			{RangeLow: 50, RangeHigh: 150, Ref: colorutil.RGB{R: 200, G: 110, B: 130}, Status: StatusLow},
			{RangeLow: 150, RangeHigh: 250, Ref: colorutil.RGB{R: 170, G: 100, B: 150}, Status: StatusOK},
			{RangeLow: 250, RangeHigh: 400, Ref: colorutil.RGB{R: 140, G: 90, B: 160}, Status: StatusOK},
			{RangeLow: 400, RangeHigh: 800, Ref: colorutil.RGB{R: 110, G: 80, B: 170}, Status: StatusHigh},
		},
	}
}

func cyanuricAcidTable() Table {
	return Table{
		Key:  CyanuricAcid,
		Name: "Cyanuric Acid",
		Unit: "ppm",
		Entries: []Entry{
			{RangeLow: 0, RangeHigh: 30, Ref: colorutil.RGB{R: 240, G: 180, B: 120}, Status: StatusLow},
			{RangeLow: 30, RangeHigh: 50, Ref: colorutil.RGB{R: 220, G: 150, B: 130}, Status: StatusOK},
			{RangeLow: 50, RangeHigh: 100, Ref: colorutil.RGB{R: 190, G: 120, B: 140}, Status: StatusOK},
			{RangeLow: 100, RangeHigh: 150, Ref: colorutil.RGB{R: 160, G: 90, B: 150}, Status: StatusHigh},
			{RangeLow: 150, RangeHigh: 300, Ref: colorutil.RGB{R: 130, G: 70, B: 160}, Status: StatusHigh},
		},
	}
}

// Pool6in1 returns the built-in 6-parameter product definition. Band
// order matches the physical strip, pad 1 at the tip.
func Pool6in1() *Product {
	return &Product{
		ProductName: builtin6Name,
		Type:        Strip6in1,
		Parameters: []Table{
			freeChlorineTable(),
			phTable(),
			totalAlkalinityTable(),
			totalChlorineTable(),
			totalHardnessTable(),
			cyanuricAcidTable(),
		},
	}
}

// Pool3in1 returns the built-in 3-parameter product definition: the
// first three pads of the 6-in-1 layout.
func Pool3in1() *Product {
	return &Product{
		ProductName: builtin3Name,
		Type:        Strip3in1,
		Parameters: []Table{
			freeChlorineTable(),
			phTable(),
			totalAlkalinityTable(),
		},
	}
}

func init() {
	Register(Pool6in1())
	Register(Pool3in1())
}
