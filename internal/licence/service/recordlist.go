package service

import (
	"context"
	"fmt"

	"hdc/internal/audit"
	"hdc/internal/licence/document"
	"hdc/internal/licence/status"
	"hdc/pkg/platform/sentinel"
)

var addressRejectionsPath = []string{"proposedAddress", "rejections"}

// RejectProposedAddress retires the active curfew address into the rejection
// history, annotated with the withdrawal reason, and clears the address, its
// review and the risk assessment so fresh answers can be captured.
func (s *Service) RejectProposedAddress(ctx context.Context, bookingID int64, withdrawalReason string) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.RejectProposedAddress")
	defer span.End()

	if !status.ValidWithdrawalReason(withdrawalReason) {
		return nil, fmt.Errorf("withdrawal reason %q: %w", withdrawalReason, sentinel.ErrInvalidState)
	}

	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	updated := record.Document.Copy()

	entry := map[string]any{"withdrawalReason": withdrawalReason}
	if address := updated.GetMap("proposedAddress", "curfewAddress"); address != nil {
		entry["address"] = address
	}
	if review := updated.GetMap("curfew", "curfewAddressReview"); review != nil {
		entry["addressReview"] = map[string]any{"curfewAddressReview": review}
	}
	if risk := updated.GetMap("risk", "riskManagement"); risk != nil {
		picked := map[string]any{}
		for _, key := range []string{"proposedAddressSuitable", "unsuitableReason"} {
			if v, ok := risk[key]; ok {
				picked[key] = v
			}
		}
		if len(picked) > 0 {
			entry["riskManagement"] = picked
		}
	}

	updated.AppendRecord(entry, addressRejectionsPath...)
	updated.RemovePaths([][]string{
		{"proposedAddress", "curfewAddress"},
		{"risk", "riskManagement", "proposedAddressSuitable"},
		{"risk", "riskManagement", "unsuitableReason"},
		{"curfew", "curfewAddressReview"},
	})

	if _, err := s.replace(ctx, bookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	s.metrics.RecordListOperation("address_reject")
	s.emit(ctx, audit.ActionAddressRejected, bookingID, map[string]any{"withdrawalReason": withdrawalReason})
	return updated, nil
}

// ReinstateProposedAddress pops the most recent rejection and restores its
// address, review and risk answers. Absent fields stay absent.
func (s *Service) ReinstateProposedAddress(ctx context.Context, bookingID int64) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.ReinstateProposedAddress")
	defer span.End()

	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	updated := record.Document.Copy()

	entry, ok := updated.PopRecord(addressRejectionsPath...)
	if !ok {
		return nil, fmt.Errorf("no rejected address to reinstate for booking %d: %w", bookingID, sentinel.ErrInvalidState)
	}

	updated.SetIfPresent(entry["address"], "proposedAddress", "curfewAddress")
	if review, rok := entry["addressReview"].(map[string]any); rok {
		updated.SetIfPresent(review["curfewAddressReview"], "curfew", "curfewAddressReview")
	}
	if risk, rok := entry["riskManagement"].(map[string]any); rok {
		updated.SetIfPresent(risk["proposedAddressSuitable"], "risk", "riskManagement", "proposedAddressSuitable")
		updated.SetIfPresent(risk["unsuitableReason"], "risk", "riskManagement", "unsuitableReason")
	}

	if _, err := s.replace(ctx, bookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	s.metrics.RecordListOperation("address_reinstate")
	s.emit(ctx, audit.ActionAddressReinstated, bookingID, nil)
	return updated, nil
}

// RejectBass retires the active BASS referral into the rejection history
// with the rejection reason attached and opens a fresh referral carrying
// the given bassRequested answer.
func (s *Service) RejectBass(ctx context.Context, bookingID int64, bassRequested, reason string) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.RejectBass")
	defer span.End()

	return s.deactivateBass(ctx, bookingID, "bass_reject", audit.ActionBassRejected,
		map[string]any{"rejectionReason": reason},
		map[string]any{"bassRequest": map[string]any{"bassRequested": bassRequested}},
	)
}

// WithdrawBass retires the active BASS referral with a withdrawal
// annotation. The fresh referral always restarts at bassRequested Yes.
func (s *Service) WithdrawBass(ctx context.Context, bookingID int64, withdrawal string) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.WithdrawBass")
	defer span.End()

	return s.deactivateBass(ctx, bookingID, "bass_withdraw", audit.ActionBassRejected,
		map[string]any{"withdrawal": withdrawal},
		map[string]any{"bassRequest": map[string]any{"bassRequested": "Yes"}},
	)
}

func (s *Service) deactivateBass(ctx context.Context, bookingID int64, op, action string, annotation, fresh map[string]any) (document.Document, error) {
	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	updated := record.Document.Copy()

	active := updated.GetMap("bassReferral")
	if active == nil {
		return record.Document, nil
	}

	entry := map[string]any{}
	for k, v := range active {
		entry[k] = v
	}
	for k, v := range annotation {
		entry[k] = v
	}

	updated.AppendRecord(entry, "bassRejections")
	updated.Set(fresh, "bassReferral")

	if _, err := s.replace(ctx, bookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	s.metrics.RecordListOperation(op)
	s.emit(ctx, action, bookingID, annotation)
	return updated, nil
}

// ReinstateBass pops the most recent BASS rejection, strips its withdrawal
// annotation and restores it as the active referral.
func (s *Service) ReinstateBass(ctx context.Context, bookingID int64) (document.Document, error) {
	ctx, span := s.tracer.Start(ctx, "licence.ReinstateBass")
	defer span.End()

	record, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	updated := record.Document.Copy()

	entry, ok := updated.PopRecord("bassRejections")
	if !ok {
		return nil, fmt.Errorf("no rejected bass referral to reinstate for booking %d: %w", bookingID, sentinel.ErrInvalidState)
	}
	delete(entry, "withdrawal")
	updated.Set(entry, "bassReferral")

	if _, err := s.replace(ctx, bookingID, record.Stage, updated); err != nil {
		return nil, err
	}
	s.metrics.RecordListOperation("bass_reinstate")
	s.emit(ctx, audit.ActionBassReinstated, bookingID, nil)
	return updated, nil
}
