package media

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/med-directory/internal/dbtest"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/infra/repository"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/storage"
)

const bucketURL = "https://cdn.test"

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	m.objects[key] = body
	return bucketURL + "/" + key, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, bucketURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, bucketURL+"/"), true
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

type fixture struct {
	store  *memoryStore
	images *Images
	clinic models.Clinic
	med    models.Medication
}

func newFixture(t *testing.T, store storage.ObjectStore) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	f := &fixture{
		clinic: models.Clinic{Name: "City"},
		med:    models.Medication{Name: "Aspirin"},
	}
	require.NoError(t, db.Create(&f.clinic).Error)
	require.NoError(t, db.Create(&f.med).Error)

	if ms, ok := store.(*memoryStore); ok {
		f.store = ms
	}
	f.images = NewImages(
		store,
		repository.NewGormResource[models.Clinic](db, repository.ClinicDefinition),
		repository.NewGormResource[models.Medication](db, repository.MedicationDefinition),
		nil,
		1200,
	)
	return f
}

func TestUploadClinicLogoReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &memoryStore{objects: map[string][]byte{}})

	first, err := f.images.UploadClinic(ctx, "admin", f.clinic.ID, SlotClinicLogo, pngBytes(t))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first.LogoURL, ".webp"))
	assert.Len(t, f.store.objects, 1)

	second, err := f.images.UploadClinic(ctx, "admin", f.clinic.ID, SlotClinicLogo, pngBytes(t))
	require.NoError(t, err)
	assert.NotEqual(t, first.LogoURL, second.LogoURL)
	assert.Len(t, f.store.objects, 1, "old logo is removed")
	assert.Nil(t, second.ImageURL)
}

func TestAdditionalImageUploadAndRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &memoryStore{objects: map[string][]byte{}})

	_, err := f.images.RemoveClinicAdditional(ctx, "admin", f.clinic.ID)
	assert.True(t, httperr.IsBusiness(err, "image_not_found"))

	c, err := f.images.UploadClinic(ctx, "admin", f.clinic.ID, SlotClinicAdditional, pngBytes(t))
	require.NoError(t, err)
	require.NotNil(t, c.ImageURL)

	c, err = f.images.RemoveClinicAdditional(ctx, "admin", f.clinic.ID)
	require.NoError(t, err)
	assert.Nil(t, c.ImageURL)
	assert.Empty(t, f.store.objects)
}

func TestUploadMedicationImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &memoryStore{objects: map[string][]byte{}})

	med, err := f.images.UploadMedication(ctx, "admin", f.med.ID, pngBytes(t))
	require.NoError(t, err)
	assert.Contains(t, med.ImageURL, "medications/"+f.med.ID+"/")

	_, err = f.images.UploadMedication(ctx, "admin", "missing", pngBytes(t))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUploadRejectsNonImages(t *testing.T) {
	f := newFixture(t, &memoryStore{objects: map[string][]byte{}})

	_, err := f.images.UploadClinic(context.Background(), "admin", f.clinic.ID, SlotClinicLogo, []byte("plain text"))
	assert.True(t, httperr.IsBusiness(err, "image_type_not_allowed"))
	assert.Empty(t, f.store.objects)
}

func TestUploadWithoutStorage(t *testing.T) {
	f := newFixture(t, storage.DisabledStore{})

	_, err := f.images.UploadClinic(context.Background(), "admin", f.clinic.ID, SlotClinicLogo, pngBytes(t))
	assert.True(t, httperr.IsBusiness(err, "image_storage_disabled"))
}
