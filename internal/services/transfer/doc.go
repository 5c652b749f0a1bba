/*
Package transfer validates bank transfers and stores their confirmation documents.

The service asks a Validator whether a transfer exists, downloads the
confirmation document from the returned Receipt and hands the bytes to a
DocumentStore under the transfer's tracking key (clave de rastreo).

Usage:

	svc := transfer.NewService(
	    transfer.NewCEPValidator(cep.NewClient(baseURL, 30*time.Second)),
	    store,
	    transfer.NewPrometheusMetrics(prometheus.DefaultRegisterer),
	    logger,
	)

	resp, err := svc.ValidateTransfer(ctx, &models.TransferRequest{...})

Outcomes:

  - Found: the document is stored and the response has Success true.
  - Not found: the Validator returns errors.ErrTransferNotFound; nothing is
    stored and the response has Success false. This is not an error.
  - Anything else: a *errors.DomainError of kind ValidatorUnavailable or
    StorageFailure. No retries are attempted.
*/
package transfer
