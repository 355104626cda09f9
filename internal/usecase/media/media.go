package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	"github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/storage"
)

// Slot names the image column an upload replaces.
type Slot string

const (
	SlotClinicLogo       Slot = "logo"
	SlotClinicAdditional Slot = "additional"
	SlotMedication       Slot = "medication"
)

var errStorageDisabled = httperr.ErrBadRequest(
	"image_storage_disabled",
	"Image storage is not configured",
)

func uploadFailed() httperr.BusinessError {
	return httperr.BusinessError{
		Kind:    httperr.KindBadRequest,
		Code:    "image_upload_failed",
		Message: "Failed to upload image",
	}
}

// ======================================================
// USE CASE
// ======================================================

// Images transcodes uploads to WebP, stores them and points the owning row
// at the new URL.
type Images struct {
	store       storage.ObjectStore
	clinics     resource.Repository[models.Clinic]
	medications resource.Repository[models.Medication]
	audit       *audit.Dispatcher
	maxWidth    int
}

func NewImages(
	store storage.ObjectStore,
	clinics resource.Repository[models.Clinic],
	medications resource.Repository[models.Medication],
	audit *audit.Dispatcher,
	maxWidth int,
) *Images {
	return &Images{
		store:       store,
		clinics:     clinics,
		medications: medications,
		audit:       audit,
		maxWidth:    maxWidth,
	}
}

func (uc *Images) put(
	ctx context.Context,
	prefix string,
	id string,
	data []byte,
) (string, error) {

	if err := storage.ValidateImage(data); err != nil {
		return "", err
	}

	out, err := storage.ToWebP(data, uc.maxWidth)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s/%s.webp", prefix, id, uuid.NewString())
	url, err := uc.store.Put(ctx, key, out, "image/webp")
	if errors.Is(err, storage.ErrDisabled) {
		return "", errStorageDisabled
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// drop removes a previously stored object. Failures only leave an orphan.
func (uc *Images) drop(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	key, ok := uc.store.KeyFromURL(*url)
	if !ok {
		return
	}
	if err := uc.store.Delete(ctx, key); err != nil {
		slog.Default().Warn("old image not removed", "key", key, "error", err)
	}
}

func (uc *Images) record(actorID, action, entity, id string, slot Slot) {
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   action,
		Entity:   entity,
		EntityID: audit.StringPtr(id),
		Metadata: map[string]any{"slot": slot},
	})
}

// ======================================================
// CLINIC
// ======================================================

func (uc *Images) UploadClinic(
	ctx context.Context,
	actorID string,
	clinicID string,
	slot Slot,
	data []byte,
) (*models.Clinic, error) {

	if slot != SlotClinicLogo && slot != SlotClinicAdditional {
		return nil, httperr.ErrBadRequest("invalid_image_slot", "Unknown image slot")
	}

	clinic, err := uc.clinics.Get(ctx, clinicID)
	if err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	url, err := uc.put(ctx, "clinics", clinicID, data)
	if err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	var prev string
	if slot == SlotClinicLogo {
		prev = clinic.LogoURL
		clinic.LogoURL = url
	} else {
		if clinic.ImageURL != nil {
			prev = *clinic.ImageURL
		}
		clinic.ImageURL = &url
	}

	if err := uc.clinics.Update(ctx, clinic); err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	uc.drop(ctx, &prev)
	uc.record(actorID, audit.ActionImageUploaded, "clinic", clinicID, slot)
	return clinic, nil
}

func (uc *Images) RemoveClinicAdditional(
	ctx context.Context,
	actorID string,
	clinicID string,
) (*models.Clinic, error) {

	clinic, err := uc.clinics.Get(ctx, clinicID)
	if err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}
	if clinic.ImageURL == nil {
		return nil, httperr.ErrNotFound("image_not_found", "Clinic has no additional image")
	}

	old := *clinic.ImageURL
	clinic.ImageURL = nil

	if err := uc.clinics.Update(ctx, clinic); err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	uc.drop(ctx, &old)
	uc.record(actorID, audit.ActionImageRemoved, "clinic", clinicID, SlotClinicAdditional)
	return clinic, nil
}

// ======================================================
// MEDICATION
// ======================================================

func (uc *Images) UploadMedication(
	ctx context.Context,
	actorID string,
	medicationID string,
	data []byte,
) (*models.Medication, error) {

	med, err := uc.medications.Get(ctx, medicationID)
	if err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	url, err := uc.put(ctx, "medications", medicationID, data)
	if err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	prev := med.ImageURL
	med.ImageURL = url

	if err := uc.medications.Update(ctx, med); err != nil {
		return nil, httperr.Wrap(err, uploadFailed())
	}

	uc.drop(ctx, &prev)
	uc.record(actorID, audit.ActionImageUploaded, "medication", medicationID, SlotMedication)
	return med, nil
}
