package billing

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/leasehold/internal/calculator"
	"github.com/mmynk/leasehold/internal/metrics"
	"github.com/mmynk/leasehold/internal/models"
)

// PaymentResult describes the outcome of a payment operation.
type PaymentResult struct {
	InvoiceID string
	SplitID   string // empty for invoice-level payments

	// Changed reports whether this call performed the unpaid -> paid
	// transition. A repeated or concurrent call sees Changed == false.
	Changed bool

	// Settled reports whether every split of the invoice is paid afterwards.
	Settled bool

	// SplitsPaid counts splits marked paid by the downward cascade.
	SplitsPaid int
}

// ReconcileReport summarizes a Reconcile run.
type ReconcileReport struct {
	Checked int

	// Settled counts unpaid invoices flagged paid because all splits were paid.
	Settled int

	// Cascaded counts paid invoices whose unpaid splits had to be completed.
	Cascaded   int
	SplitsPaid int

	// Failed lists invoices that could not be reconciled.
	Failed []string
}

// MarkInvoicePaid records a manager's payment of the whole invoice and then
// marks every unpaid split paid. The invoice write is kept even if some
// split writes fail; those are reported in a *models.PropagationError
// alongside the result and are completed by a later Reconcile.
func (l *Ledger) MarkInvoicePaid(ctx context.Context, invoiceID string) (*PaymentResult, error) {
	now := l.now()

	changed, err := l.store.MarkInvoicePaid(ctx, invoiceID, now)
	if err != nil {
		return nil, models.NewPersistenceError("mark invoice paid", err)
	}
	if changed {
		l.metrics.InvoiceSettled(metrics.RuleDownward)
		l.logger.Info("Invoice marked paid", "invoice_id", invoiceID)
	} else {
		l.logger.Debug("Invoice already paid", "invoice_id", invoiceID)
	}

	result := &PaymentResult{InvoiceID: invoiceID, Changed: changed}
	paid, err := l.payAllSplits(ctx, invoiceID, now)
	result.SplitsPaid = paid
	if err != nil {
		return result, err
	}

	result.Settled = true
	return result, nil
}

// MarkSplitPaid records one resident's payment and then settles the
// invoice if that was the last unpaid split. If the split write succeeds
// but settling fails, a *models.PropagationError is returned with the result.
func (l *Ledger) MarkSplitPaid(ctx context.Context, splitID string) (*PaymentResult, error) {
	split, err := l.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, models.NewPersistenceError("get split", err)
	}

	changed, err := l.store.MarkSplitPaid(ctx, splitID, l.now())
	if err != nil {
		return nil, models.NewPersistenceError("mark split paid", err)
	}
	if changed {
		l.metrics.SplitPaid()
		l.logger.Info("Split marked paid", "split_id", splitID, "invoice_id", split.InvoiceID)
	}

	result := &PaymentResult{InvoiceID: split.InvoiceID, SplitID: splitID, Changed: changed}
	settled, err := l.SettleInvoice(ctx, split.InvoiceID)
	result.Settled = settled
	if err != nil {
		l.metrics.PropagationFailed()
		l.logger.Warn("Failed to settle invoice after split payment",
			"invoice_id", split.InvoiceID, "split_id", splitID, "error", err)
		return result, &models.PropagationError{
			InvoiceID: split.InvoiceID,
			Failed:    []string{split.InvoiceID},
			Err:       err,
		}
	}
	return result, nil
}

// SettleInvoice applies the upward rule: if every split of the invoice is
// paid, the invoice flag is set. It returns whether the invoice is fully
// settled, which may be true even when setting the flag failed.
func (l *Ledger) SettleInvoice(ctx context.Context, invoiceID string) (bool, error) {
	invoice, err := l.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return false, models.NewPersistenceError("get invoice", err)
	}
	splits, err := l.store.ListSplitsByInvoice(ctx, invoiceID)
	if err != nil {
		return false, models.NewPersistenceError("list splits", err)
	}

	if !calculator.Summarize(invoice.Amount, splits).FullySettled {
		return false, nil
	}
	if invoice.Paid {
		return true, nil
	}

	if _, err := l.flagPaid(ctx, invoiceID, metrics.RuleUpward); err != nil {
		return true, err
	}
	return true, nil
}

// Reconcile repairs invoices left inconsistent by interrupted propagation.
// Unpaid invoices whose splits are all paid are flagged paid, and paid
// invoices with unpaid splits have those splits marked paid. A failure on
// one invoice is logged and recorded in the report; only a failure to list
// invoices or a cancelled context stops the run.
func (l *Ledger) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	invoices, err := l.store.ListInvoices(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("list invoices", err)
	}

	report := &ReconcileReport{}
	for _, invoice := range invoices {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		if invoice.Paid {
			paid, err := l.payAllSplits(ctx, invoice.ID, l.now())
			report.SplitsPaid += paid
			if err != nil {
				report.Failed = append(report.Failed, invoice.ID)
				continue
			}
			if paid > 0 {
				report.Cascaded++
			}
			continue
		}

		splits, err := l.store.ListSplitsByInvoice(ctx, invoice.ID)
		if err != nil {
			l.logger.Error("Reconcile: failed to list splits", "invoice_id", invoice.ID, "error", err)
			report.Failed = append(report.Failed, invoice.ID)
			continue
		}
		if !calculator.Summarize(invoice.Amount, splits).FullySettled {
			continue
		}

		changed, err := l.flagPaid(ctx, invoice.ID, metrics.RuleReconcile)
		if err != nil {
			report.Failed = append(report.Failed, invoice.ID)
			continue
		}
		if changed {
			report.Settled++
		}
	}

	l.logger.Info("Reconcile finished",
		"checked", report.Checked,
		"settled", report.Settled,
		"cascaded", report.Cascaded,
		"splits_paid", report.SplitsPaid,
		"failed", len(report.Failed),
	)
	return report, nil
}

// flagPaid sets the invoice flag on behalf of a settlement rule.
func (l *Ledger) flagPaid(ctx context.Context, invoiceID, rule string) (bool, error) {
	changed, err := l.store.MarkInvoicePaid(ctx, invoiceID, l.now())
	if err != nil {
		l.logger.Error("Failed to flag settled invoice paid", "invoice_id", invoiceID, "rule", rule, "error", err)
		return false, models.NewPersistenceError("mark invoice paid", err)
	}
	if changed {
		l.metrics.InvoiceSettled(rule)
		l.logger.Info("Invoice settled", "invoice_id", invoiceID, "rule", rule)
	}
	return changed, nil
}

// payAllSplits applies the downward rule, marking every unpaid split of the
// invoice paid. It attempts every split even after a failure.
func (l *Ledger) payAllSplits(ctx context.Context, invoiceID string, at time.Time) (int, error) {
	splits, err := l.store.ListSplitsByInvoice(ctx, invoiceID)
	if err != nil {
		l.metrics.PropagationFailed()
		l.logger.Error("Failed to list splits for cascade", "invoice_id", invoiceID, "error", err)
		return 0, &models.PropagationError{InvoiceID: invoiceID, Err: err}
	}

	var (
		paid   int
		failed []string
		errs   []error
	)
	for _, split := range calculator.Unpaid(splits) {
		changed, err := l.store.MarkSplitPaid(ctx, split.ID, at)
		if err != nil {
			failed = append(failed, split.ID)
			errs = append(errs, err)
			continue
		}
		if changed {
			paid++
			l.metrics.SplitPaid()
		}
	}

	if len(failed) > 0 {
		l.metrics.PropagationFailed()
		l.logger.Warn("Invoice partially settled",
			"invoice_id", invoiceID, "failed_splits", failed, "splits_paid", paid)
		return paid, &models.PropagationError{InvoiceID: invoiceID, Failed: failed, Err: errors.Join(errs...)}
	}
	return paid, nil
}
