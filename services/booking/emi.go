package booking

import (
	"time"

	"wanderly/models"
)

// GenerateSchedule produces the installment schedule for an EMI plan.
// Each installment is ceil(total/months); the one-time processing fee
// rides on installment 1; the final installment absorbs the ceiling
// drift so the schedule sums to exactly total + processingFee. Due
// dates advance by calendar months from start, not fixed 30-day
// steps. Deterministic for fixed inputs.
func GenerateSchedule(total int64, months int, processingFee int64, start time.Time) ([]models.Installment, error) {
	if months <= 0 {
		return nil, NewLifecycleError(CodeValidation, "installment count must be positive")
	}
	if total <= 0 {
		return nil, NewLifecycleError(CodeValidation, "total amount must be positive")
	}
	if processingFee < 0 {
		return nil, NewLifecycleError(CodeValidation, "processing fee cannot be negative")
	}

	per := (total + int64(months) - 1) / int64(months)

	schedule := make([]models.Installment, 0, months)
	var allocated int64
	for n := 1; n <= months; n++ {
		amount := per
		if n == months {
			amount = total - allocated
		}
		allocated += amount

		if n == 1 {
			amount += processingFee
		}

		schedule = append(schedule, models.Installment{
			InstallmentNumber: n,
			DueDate:           start.AddDate(0, n-1, 0),
			Amount:            amount,
			Status:            models.InstallmentStatusPending,
		})
	}
	return schedule, nil
}

// NextDueDate returns the due date of the earliest pending
// installment, or nil when the schedule is exhausted.
func NextDueDate(schedule []models.Installment) *time.Time {
	for i := range schedule {
		if schedule[i].Status == models.InstallmentStatusPending {
			due := schedule[i].DueDate
			return &due
		}
	}
	return nil
}

// InstallmentPrincipal is the portion of an installment's amount that
// pays down the balance: everything except the processing fee on
// installment 1.
func InstallmentPrincipal(inst models.Installment, processingFee int64) int64 {
	if inst.InstallmentNumber == 1 {
		principal := inst.Amount - processingFee
		if principal < 0 {
			return 0
		}
		return principal
	}
	return inst.Amount
}
