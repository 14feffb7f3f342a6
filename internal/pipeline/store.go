package pipeline

// ============================================================================
// Stage records
// ============================================================================

// Record is the stored state of one stage: its status, the fingerprint of the
// input its output (or in-flight request, or failure) corresponds to, and the
// output or error itself. Output is typed per stage; use the Engine accessors
// to read it.
type Record struct {
	Status      Status
	Fingerprint string
	Output      any
	Err         error
}

// store holds one record per stage. It is mutated only through the Engine's
// commit and invalidate paths so every transition passes through the
// fingerprint checks.
type store struct {
	records [stageCount]Record
}

// record returns a copy of the stage's record.
func (s *store) record(stage Stage) Record {
	return s.records[stage]
}

// set replaces the stage's record wholesale.
func (s *store) set(stage Stage, rec Record) {
	s.records[stage] = rec
}

// reset returns the stage to Idle, dropping output, error, and fingerprint.
func (s *store) reset(stage Stage) {
	s.records[stage] = Record{Status: StatusIdle}
}

// invalidateAfter resets every stage strictly downstream of the given stage.
func (s *store) invalidateAfter(stage Stage) {
	for j := stage + 1; j < stageCount; j++ {
		s.reset(j)
	}
}
