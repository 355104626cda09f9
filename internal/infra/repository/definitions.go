package repository

import (
	"github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ======================================================
// Directory
// ======================================================

var RegionDefinition = resource.Definition{
	Entity:        "region",
	SearchColumns: []string{"name"},
	Sortable:      []string{"name", "created_at"},
	DefaultSortBy: "name",
	DefaultSort:   "asc",
}

var SpecialtyDefinition = resource.Definition{
	Entity:        "specialty",
	SearchColumns: []string{"name"},
	Sortable:      []string{"name", "created_at"},
	DefaultSortBy: "name",
	DefaultSort:   "asc",
}

var ServiceDefinition = resource.Definition{
	Entity:        "service",
	SearchColumns: []string{"name", "description"},
	Sortable:      []string{"name", "category", "created_at"},
}

var ClinicServiceDefinition = resource.Definition{
	Entity:   "clinic_service",
	Sortable: []string{"price", "duration_minutes", "created_at"},
	Preloads: []string{"Clinic", "Service"},
}

var ClinicDefinition = resource.Definition{
	Entity:        "clinic",
	SearchColumns: []string{"name", "address", "phone", "email", "website"},
	Sortable:      []string{"name", "address", "email", "rating", "created_at"},
	Preloads:      []string{"Region"},

	ReadOnlyColumns: []string{"rating"},
}

var DoctorDefinition = resource.Definition{
	Entity:        "doctor",
	SearchColumns: []string{"bio"},
	Sortable:      []string{"experience_years", "rating", "created_at"},
	Preloads:      []string{"Clinic", "Specialty"},

	ReadOnlyColumns: []string{"rating"},
}

var UserDefinition = resource.Definition{
	Entity:        "user",
	SearchColumns: []string{"name", "surname", "email"},
	Sortable:      []string{"name", "surname", "email", "created_at"},
	Preloads:      []string{"Region"},
}

var ReviewDefinition = resource.Definition{
	Entity:        "review",
	SearchColumns: []string{"comment"},
	Sortable:      []string{"rating", "created_at"},
	Preloads:      []string{"User", "Clinic", "Doctor"},
}

var AppointmentDefinition = resource.Definition{
	Entity:        "appointment",
	SearchColumns: []string{"notes"},
	Sortable:      []string{"appointment_date", "status", "created_at"},
	DefaultSortBy: "appointment_date",
	Preloads:      []string{"User", "Clinic", "Doctor"},
}

// ======================================================
// Pharmacy
// ======================================================

var MedicationCategoryDefinition = resource.Definition{
	Entity:        "medication_category",
	SearchColumns: []string{"name"},
	Sortable:      []string{"name", "created_at"},
	DefaultSortBy: "name",
	DefaultSort:   "asc",
}

var MedicationDefinition = resource.Definition{
	Entity:        "medication",
	SearchColumns: []string{"name", "description", "composition", "manufacturer", "country"},
	Sortable:      []string{"name", "country", "created_at"},
	Preloads:      []string{"Category"},
}

var MedicationPriceDefinition = resource.Definition{
	Entity: "medication_price",
	SearchClause: "medication_id IN (SELECT id FROM medications WHERE LOWER(name) LIKE ?) " +
		"OR pharmacy_id IN (SELECT id FROM pharmacies WHERE LOWER(name) LIKE ?)",
	Sortable: []string{"price", "available", "created_at"},
	Preloads: []string{"Medication", "Pharmacy"},
}

var MedicationFAQDefinition = resource.Definition{
	Entity:        "medication_faq",
	SearchColumns: []string{"question", "answer"},
	Sortable:      []string{"created_at"},
}

var PharmacyDefinition = resource.Definition{
	Entity:        "pharmacy",
	SearchColumns: []string{"name", "address", "phone", "website"},
	Sortable:      []string{"name", "address", "phone", "website", "created_at"},
}

// ======================================================
// Content
// ======================================================

var ArticleDefinition = resource.Definition{
	Entity:        "article",
	SearchColumns: []string{"title", "content"},
	Sortable:      []string{"title", "created_at"},
}

var PromotionDefinition = resource.Definition{
	Entity:        "promotion",
	SearchColumns: []string{"title", "description"},
	Sortable:      []string{"title", "discount_percent", "created_at"},
	Preloads:      []string{"Clinic"},
}

var BannerDefinition = resource.Definition{
	Entity:        "banner",
	SearchColumns: []string{"link_url"},
	Sortable:      []string{"position", "created_at"},
	DefaultSortBy: "position",
	DefaultSort:   "asc",
}

var FAQDefinition = resource.Definition{
	Entity:        "faq",
	SearchColumns: []string{"question", "answer"},
	Sortable:      []string{"created_at"},
}

var ContactDefinition = resource.Definition{
	Entity:        "contact",
	SearchColumns: []string{"name", "email", "phone"},
	Sortable:      []string{"name", "email", "phone", "created_at"},
}

// Compile-time check
var _ resource.Repository[models.Clinic] = (*GormResource[models.Clinic])(nil)
