package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"glowbook/api"
	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/models"
	"glowbook/services/wallet"
)

const policyCacheKey = "booking_policy"
const policyCacheTTL = time.Hour

// DefaultAppointmentService is the lifecycle orchestrator. Each operation
// validates locally, submits the combined transition + ledger effect to the
// system of record as one call, and adopts the authoritative response. On
// any failure the local view is left untouched.
type DefaultAppointmentService struct {
	Remote      api.Client
	Snapshots   snapshotRepo.Repository
	WalletSvc   wallet.WalletService
	PolicyCache *redis.Client
	Logger      *zap.Logger
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, accountID, appointmentID, reason string) (*models.CancelResult, error) {
	appt, err := s.loadAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := ValidateCancel(appt); err != nil {
		return nil, err
	}

	expected := DecideCancellation(appt.PaymentMethod, appt.PaymentStatus, appt.TotalPrice)

	resp, err := s.Remote.CancelAppointment(ctx, accountID, api.CancelRequest{
		AppointmentID:      appointmentID,
		CancellationReason: reason,
	})
	if err != nil {
		return nil, err
	}

	if resp.WalletRefunded != (expected.Effect == models.LedgerEffectCredit) {
		s.Logger.Warn("refund outcome differs from local policy decision",
			zap.String("appointmentID", appointmentID),
			zap.String("expectedEffect", expected.Effect),
			zap.Bool("walletRefunded", resp.WalletRefunded))
	}

	if err := s.adopt(ctx, accountID, resp.Appointment, resp.Wallet, resp.WalletRefunded); err != nil {
		return nil, err
	}

	s.Logger.Info("appointment cancelled",
		zap.String("accountID", accountID),
		zap.String("bookingReference", resp.Appointment.BookingReference),
		zap.Bool("walletRefunded", resp.WalletRefunded))

	return &models.CancelResult{
		Appointment:    resp.Appointment,
		WalletRefunded: resp.WalletRefunded,
		RefundAmount:   resp.RefundAmount,
	}, nil
}

func (s *DefaultAppointmentService) Reschedule(ctx context.Context, accountID, appointmentID, date, timeOfDay string) (*models.RescheduleResult, error) {
	appt, err := s.loadAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := ValidateReschedule(appt); err != nil {
		return nil, err
	}

	resp, err := s.Remote.RescheduleAppointment(ctx, accountID, api.RescheduleRequest{
		AppointmentID:   appointmentID,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
	})
	if err != nil {
		return nil, err
	}

	// Reschedule has no ledger effect; only the appointment is adopted.
	if err := s.adopt(ctx, accountID, resp.Appointment, nil, false); err != nil {
		return nil, err
	}

	s.Logger.Info("appointment rescheduled",
		zap.String("accountID", accountID),
		zap.String("bookingReference", resp.Appointment.BookingReference),
		zap.String("date", date),
		zap.String("time", timeOfDay))

	return &models.RescheduleResult{Appointment: resp.Appointment}, nil
}

func (s *DefaultAppointmentService) ModifyService(ctx context.Context, accountID, appointmentID, newServiceID string, newServicePrice float64) (*models.ModifyServiceResult, error) {
	appt, err := s.loadAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := ValidateModifyService(appt); err != nil {
		return nil, err
	}

	// Advisory only: the server's price_difference is the truth.
	preview := DecideModification(appt.TotalPrice, newServicePrice)

	resp, err := s.Remote.ModifyAppointmentService(ctx, accountID, api.ModifyServiceRequest{
		AppointmentID: appointmentID,
		ServiceID:     newServiceID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.adopt(ctx, accountID, resp.Appointment, resp.Wallet, resp.WalletChargedOrRefunded); err != nil {
		return nil, err
	}

	s.Logger.Info("appointment service modified",
		zap.String("accountID", accountID),
		zap.String("bookingReference", resp.Appointment.BookingReference),
		zap.String("newServiceID", newServiceID),
		zap.Float64("priceDifference", resp.PriceDifference))

	return &models.ModifyServiceResult{
		Appointment:     resp.Appointment,
		PriceDifference: resp.PriceDifference,
		WalletAdjusted:  resp.WalletChargedOrRefunded,
		Preview:         preview,
	}, nil
}

func (s *DefaultAppointmentService) Appointments(ctx context.Context, accountID string) ([]models.Appointment, error) {
	appointments, err := s.Snapshots.GetAppointments(ctx, accountID)
	if err == snapshotRepo.ErrNotFound {
		return s.RefreshAppointments(ctx, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment projection: %w", err)
	}
	return appointments, nil
}

func (s *DefaultAppointmentService) RefreshAppointments(ctx context.Context, accountID string) ([]models.Appointment, error) {
	appointments, err := s.Remote.FetchAppointments(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.Snapshots.ReplaceAppointments(ctx, accountID, appointments); err != nil {
		return nil, fmt.Errorf("failed to store appointment projection: %w", err)
	}
	return appointments, nil
}

func (s *DefaultAppointmentService) Policy(ctx context.Context) (*models.BookingPolicy, error) {
	if s.PolicyCache != nil {
		cached, err := s.PolicyCache.Get(ctx, policyCacheKey).Result()
		if err == nil {
			var policy models.BookingPolicy
			if err := json.Unmarshal([]byte(cached), &policy); err == nil {
				return &policy, nil
			}
		}
	}

	policy, err := s.Remote.FetchPolicy(ctx)
	if err != nil {
		return nil, err
	}

	if s.PolicyCache != nil {
		data, err := json.Marshal(policy)
		if err == nil {
			if err := s.PolicyCache.Set(ctx, policyCacheKey, data, policyCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache booking policy", zap.Error(err))
			}
		}
	}
	return policy, nil
}

// loadAppointment resolves the current appointment state, preferring the
// local projection and falling back to the remote on a cache miss.
func (s *DefaultAppointmentService) loadAppointment(ctx context.Context, accountID, appointmentID string) (*models.Appointment, error) {
	appointments, err := s.Snapshots.GetAppointments(ctx, accountID)
	if err == nil {
		for i := range appointments {
			if appointments[i].ID == appointmentID {
				return &appointments[i], nil
			}
		}
	} else if err != snapshotRepo.ErrNotFound {
		return nil, fmt.Errorf("failed to load appointment projection: %w", err)
	}

	appt, err := s.Remote.FetchAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.Snapshots.UpsertAppointment(ctx, accountID, *appt); err != nil {
		return nil, fmt.Errorf("failed to store appointment projection: %w", err)
	}
	return appt, nil
}

// adopt replaces local projections with the authoritative server payloads.
// When the server reports a ledger effect but omits the wallet payload, the
// wallet is re-fetched so the projection cannot go stale; a failed re-fetch
// is logged rather than failing the already-committed operation, and the
// background reconciliation worker converges it later.
func (s *DefaultAppointmentService) adopt(ctx context.Context, accountID string, appt models.Appointment, w *models.Wallet, ledgerTouched bool) error {
	if err := s.Snapshots.UpsertAppointment(ctx, accountID, appt); err != nil {
		return fmt.Errorf("failed to store appointment projection: %w", err)
	}
	if w != nil {
		return s.WalletSvc.Adopt(ctx, accountID, *w)
	}
	if ledgerTouched {
		if _, err := s.WalletSvc.Refresh(ctx, accountID); err != nil {
			s.Logger.Warn("failed to refresh wallet after ledger-affecting operation",
				zap.String("accountID", accountID),
				zap.Error(err))
		}
	}
	return nil
}
