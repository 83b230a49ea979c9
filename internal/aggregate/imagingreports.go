package aggregate

// imagingReportsCategory renders imaging diagnostic reports, windowed and
// reduced to the latest study per name by default.
type imagingReportsCategory struct{}

func (imagingReportsCategory) ID() string    { return "imagingReports" }
func (imagingReportsCategory) Label() string { return "Imaging Reports" }
func (imagingReportsCategory) Group() string { return "Diagnostics" }
func (imagingReportsCategory) Order() int    { return 60 }

func (imagingReportsCategory) Filters() []FilterDecl {
	return []FilterDecl{
		{
			Key:     "imagingReportWindow",
			Label:   "Imaging report window",
			Type:    FilterSelect,
			Options: windowOptions,
			Default: WindowAll,
		},
		{
			Key:     "imagingReportVersion",
			Label:   "Imaging report version",
			Type:    FilterSelect,
			Options: []string{VersionLatest, VersionAll},
			Default: VersionLatest,
		},
	}
}

func (c imagingReportsCategory) Count(in Input) int {
	return len(c.panels(in))
}

func (c imagingReportsCategory) Narrate(in Input) []Section {
	return narratePanels("Imaging Reports:", c.panels(in))
}

func (imagingReportsCategory) panels(in Input) []panel {
	window := in.Filters.Get("imagingReportWindow", WindowAll)
	version := in.Filters.Get("imagingReportVersion", VersionLatest)
	return filterPanels(reportPanels(in, true), window, version, in)
}
