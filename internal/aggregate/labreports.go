package aggregate

// labReportsCategory renders non-imaging diagnostic reports plus the
// synthetic orphan panels, windowed and reduced to the latest panel per name
// by default.
type labReportsCategory struct{}

func (labReportsCategory) ID() string    { return "labReports" }
func (labReportsCategory) Label() string { return "Lab Reports" }
func (labReportsCategory) Group() string { return "Diagnostics" }
func (labReportsCategory) Order() int    { return 50 }

func (labReportsCategory) Filters() []FilterDecl {
	return []FilterDecl{
		{
			Key:     "labReportWindow",
			Label:   "Lab report window",
			Type:    FilterSelect,
			Options: windowOptions,
			Default: WindowAll,
		},
		{
			Key:     "labReportVersion",
			Label:   "Lab report version",
			Type:    FilterSelect,
			Options: []string{VersionLatest, VersionAll},
			Default: VersionLatest,
		},
	}
}

func (c labReportsCategory) Count(in Input) int {
	return len(c.panels(in))
}

func (c labReportsCategory) Narrate(in Input) []Section {
	return narratePanels("Lab Reports:", c.panels(in))
}

func (labReportsCategory) panels(in Input) []panel {
	window := in.Filters.Get("labReportWindow", WindowAll)
	version := in.Filters.Get("labReportVersion", VersionLatest)
	return filterPanels(reportPanels(in, false), window, version, in)
}
