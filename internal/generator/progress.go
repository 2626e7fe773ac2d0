package generator

// ProgressReporter receives progress callbacks during generation.
type ProgressReporter interface {
	// OnDiscoveryStart is called before source units are discovered.
	OnDiscoveryStart()

	// OnDiscoveryComplete reports how many source units were found.
	OnDiscoveryComplete(units int)

	// OnExtractionStart is called before extraction begins.
	OnExtractionStart(totalUnits int)

	// OnUnitProcessed is called after each source unit is extracted and matched.
	OnUnitProcessed(fileName string)

	// OnWritingOutput is called before output files are assembled.
	OnWritingOutput()

	// OnComplete is called with final statistics.
	OnComplete(stats *Stats)
}

// NullProgressReporter is a no-op implementation for tests and quiet mode.
type NullProgressReporter struct{}

func (NullProgressReporter) OnDiscoveryStart()                {}
func (NullProgressReporter) OnDiscoveryComplete(units int)    {}
func (NullProgressReporter) OnExtractionStart(totalUnits int) {}
func (NullProgressReporter) OnUnitProcessed(fileName string)  {}
func (NullProgressReporter) OnWritingOutput()                 {}
func (NullProgressReporter) OnComplete(stats *Stats)          {}
