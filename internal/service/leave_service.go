package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

// LeaveService reconciles the three leave sources into one view. The merge is
// computed fresh on every read; it is never persisted, so re-uploading any
// single source immediately changes the result.
type LeaveService struct {
	store  snapshotStore
	logger *zap.Logger
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(store snapshotStore, logger *zap.Logger) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{store: store, logger: logger}
}

// Merged builds the combined sabbatical and leave view. Precedence for leave
// entries, lowest to highest: faculty roster, dispatch roster, appointment
// history. Sabbatical halves come from the dispatch snapshot when present,
// falling back to the faculty roster's own extraction.
func (s *LeaveService) Merged(ctx context.Context) (*models.MergedLeaveView, error) {
	var faculty models.FacultyParseResult
	haveFaculty, err := s.loadPayload(ctx, models.CategoryFaculty, &faculty)
	if err != nil {
		return nil, err
	}
	var dispatch models.DispatchParseResult
	haveDispatch, err := s.loadPayload(ctx, models.CategoryResearchLeave, &dispatch)
	if err != nil {
		return nil, err
	}
	var appointment models.AppointmentParseResult
	haveAppointment, err := s.loadPayload(ctx, models.CategoryAppointment, &appointment)
	if err != nil {
		return nil, err
	}
	if !haveFaculty && !haveDispatch && !haveAppointment {
		return nil, appErrors.ErrNoSnapshot
	}

	view := &models.MergedLeaveView{
		Research: models.ResearchHalves{First: []models.LeaveEntry{}, Second: []models.LeaveEntry{}},
		Leave:    []models.LeaveEntry{},
	}
	if haveDispatch {
		view.Research = dispatch.Research
	} else if haveFaculty {
		view.Research = faculty.ResearchLeave.Research
	}

	merged := map[string]models.LeaveEntry{}
	var order []string
	insert := func(entry models.LeaveEntry, overwrite bool) {
		if entry.Name == "" {
			return
		}
		if _, exists := merged[entry.Name]; exists {
			if !overwrite {
				return
			}
		} else {
			order = append(order, entry.Name)
		}
		merged[entry.Name] = normalizeLeaveEntry(entry)
	}

	for _, e := range faculty.ResearchLeave.Leave {
		insert(e, true)
	}
	for _, e := range dispatch.Leave {
		insert(e, false)
	}
	for _, e := range appointment.Leave {
		insert(e, true)
	}

	for _, name := range order {
		view.Leave = append(view.Leave, merged[name])
	}
	return view, nil
}

func (s *LeaveService) loadPayload(ctx context.Context, category string, dest interface{}) (bool, error) {
	snapshot, err := s.store.Latest(ctx, category)
	if err != nil {
		if errors.Is(err, appErrors.ErrNoSnapshot) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(snapshot.Payload, dest); err != nil {
		return false, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return true, nil
}

func normalizeLeaveEntry(e models.LeaveEntry) models.LeaveEntry {
	if e.Dept == "" {
		e.Dept = models.UnassignedDept
	}
	return e
}
