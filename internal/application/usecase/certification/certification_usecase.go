package certification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type CertificationUseCase struct {
	certRepo  certification.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewCertificationUseCase(repo certification.Repository, pub service.EventPublisher, log logger.Logger) *CertificationUseCase {
	return &CertificationUseCase{certRepo: repo, publisher: pub, logger: log}
}

func (uc *CertificationUseCase) ExecuteList(ctx context.Context, userID uuid.UUID) ([]*certification.Certification, error) {
	certs, err := uc.certRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []*certification.Certification{}
	}
	return certs, nil
}

type AddCertificationInput struct {
	UserID        uuid.UUID
	Name          string
	Issuer        string
	IssueDate     time.Time
	ExpiryDate    *time.Time
	CredentialURL *string
}

func (uc *CertificationUseCase) ExecuteAdd(ctx context.Context, input AddCertificationInput) (*certification.Certification, error) {
	c := &certification.Certification{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Name:          strings.TrimSpace(input.Name),
		Issuer:        strings.TrimSpace(input.Issuer),
		IssueDate:     input.IssueDate,
		ExpiryDate:    input.ExpiryDate,
		CredentialURL: input.CredentialURL,
		CreatedAt:     time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.certRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	service.PublishAsync(uc.publisher, uc.logger, service.EventCertificationsUpdated, input.UserID)
	return c, nil
}

func (uc *CertificationUseCase) ExecuteDelete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := uc.certRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return apperror.NewForbiddenResource("certification", id.String())
	}
	if err := uc.certRepo.Delete(ctx, id); err != nil {
		return err
	}

	service.PublishAsync(uc.publisher, uc.logger, service.EventCertificationsUpdated, userID)
	return nil
}
