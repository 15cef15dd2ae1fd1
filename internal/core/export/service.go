// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/sabha/internal/platform/metrics"
	"github.com/taibuivan/sabha/internal/platform/validate"
)

// Service validates, renders and delivers reports.
type Service struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a new export [Service].
func NewService(sink Sink, logger *slog.Logger, recorder *metrics.Metrics) *Service {
	return &Service{sink: sink, logger: logger, metrics: recorder}
}

/*
Send renders a request and hands it to the sink.

Returns:
  - error: VALIDATION_ERROR for an incomplete request, or the sink's error
*/
func (service *Service) Send(ctx context.Context, request Request) error {
	validator := &validate.Validator{}
	validator.
		Required("name", request.Name).
		Custom("filteredData", len(request.Rows) == 0, "At least one row is required").
		Custom("columns", len(request.Columns) == 0, "At least one column is required").
		Custom("userDataKeys", len(request.Keys) == 0, "At least one key is required")
	if err := validator.Err(); err != nil {
		return err
	}

	request.Name = strings.TrimSpace(request.Name)
	report, err := Build(request)
	if err != nil {
		return err
	}

	err = service.sink.Send(ctx, *report)
	service.metrics.Mail(err)
	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "export_report_sent",
		slog.String("subject", report.Subject),
		slog.Int("rows", len(request.Rows)),
	)
	return nil
}
