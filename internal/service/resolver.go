package service

import (
	"context"
	"errors"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// VehicleSpec carries the already-normalized identifying fields of a
// manufacturer/model/variant chain.
type VehicleSpec struct {
	Manufacturer string
	Model        string
	BodyType     domain.BodyType
	Segment      domain.Segment
	BatteryKwh   int
	RangeKm      int
	ChargingType domain.ChargingType
	PriceEur     float64
}

// resolveOverwrites marks which mutable fields of an existing row may be
// overwritten with the spec's value. A spec field that was merely
// backfilled from a trip's previous chain must never clobber a row other
// trips share, so callers set a flag only for fields the caller was
// explicitly given.
type resolveOverwrites struct {
	BodyType bool
	Segment  bool
	Price    bool
}

// resolveVehicle finds or creates the Manufacturer -> VehicleModel ->
// VehicleVariant chain for a spec and returns the variant. Freshly created
// rows always take the spec's values; on existing rows only the fields
// flagged in overwrite are touched.
//
// Every insert races against concurrent identical creates; a uniqueness
// violation means someone else won, so the row is re-fetched by the same
// natural key.
func resolveVehicle(ctx context.Context, repos repository.Repos, spec VehicleSpec, overwrite resolveOverwrites) (*domain.VehicleVariant, error) {
	manufacturer, err := resolveManufacturer(ctx, repos.Manufacturers, spec.Manufacturer)
	if err != nil {
		return nil, err
	}

	model, created, err := resolveModel(ctx, repos.Models, manufacturer.ID, spec)
	if err != nil {
		return nil, err
	}

	if !created {
		bodyType := model.BodyType
		segment := model.Segment
		if overwrite.BodyType {
			bodyType = spec.BodyType
		}
		if overwrite.Segment {
			segment = spec.Segment
		}
		if bodyType != model.BodyType || segment != model.Segment {
			if err := repos.Models.UpdateAttrs(ctx, model.ID, bodyType, segment); err != nil {
				return nil, err
			}
			model.BodyType = bodyType
			model.Segment = segment
		}
	}

	variant, err := resolveVariant(ctx, repos.Variants, model.ID, spec, overwrite.Price)
	if err != nil {
		return nil, err
	}

	variant.Model = model
	model.Manufacturer = manufacturer
	return variant, nil
}

// resolveManufacturer finds or creates a manufacturer by exact name.
func resolveManufacturer(ctx context.Context, repo repository.ManufacturerRepository, name string) (*domain.Manufacturer, error) {
	manufacturer, err := repo.GetByName(ctx, name)
	if err == nil {
		return manufacturer, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	manufacturer = &domain.Manufacturer{Name: name}
	err = repo.Create(ctx, manufacturer)
	if err == nil {
		return manufacturer, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost the create race; use the winner's row.
		return repo.GetByName(ctx, name)
	}
	return nil, err
}

// resolveModel finds or creates a model by (manufacturer_id, name). The
// second return value reports whether this call created the row.
func resolveModel(ctx context.Context, repo repository.VehicleModelRepository, manufacturerID int64, spec VehicleSpec) (*domain.VehicleModel, bool, error) {
	model, err := repo.GetByNaturalKey(ctx, manufacturerID, spec.Model)
	if err == nil {
		return model, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	model = &domain.VehicleModel{
		ManufacturerID: manufacturerID,
		Name:           spec.Model,
		BodyType:       spec.BodyType,
		Segment:        spec.Segment,
	}
	err = repo.Create(ctx, model)
	if err == nil {
		return model, true, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		model, err = repo.GetByNaturalKey(ctx, manufacturerID, spec.Model)
		return model, false, err
	}
	return nil, false, err
}

// resolveVariant finds or creates a variant by (model_id, battery_kwh,
// range_km, charging_type). The price of an existing row is overwritten
// only when overwritePrice is set; price is mutable and non-identifying.
func resolveVariant(ctx context.Context, repo repository.VehicleVariantRepository, modelID int64, spec VehicleSpec, overwritePrice bool) (*domain.VehicleVariant, error) {
	variant, err := repo.GetByNaturalKey(ctx, modelID, spec.BatteryKwh, spec.RangeKm, spec.ChargingType)
	if err == nil {
		if overwritePrice && variant.PriceEur != spec.PriceEur {
			if err := repo.UpdatePrice(ctx, variant.ID, spec.PriceEur); err != nil {
				return nil, err
			}
			variant.PriceEur = spec.PriceEur
		}
		return variant, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	variant = &domain.VehicleVariant{
		ModelID:      modelID,
		BatteryKwh:   spec.BatteryKwh,
		RangeKm:      spec.RangeKm,
		ChargingType: spec.ChargingType,
		PriceEur:     spec.PriceEur,
	}
	err = repo.Create(ctx, variant)
	if err == nil {
		return variant, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		variant, err = repo.GetByNaturalKey(ctx, modelID, spec.BatteryKwh, spec.RangeKm, spec.ChargingType)
		if err != nil {
			return nil, err
		}
		if overwritePrice && variant.PriceEur != spec.PriceEur {
			if err := repo.UpdatePrice(ctx, variant.ID, spec.PriceEur); err != nil {
				return nil, err
			}
			variant.PriceEur = spec.PriceEur
		}
		return variant, nil
	}
	return nil, err
}

// resolveLocation finds or creates a location by exact (city, country).
// No case or whitespace normalization is applied; trivially different
// spellings create distinct rows.
func resolveLocation(ctx context.Context, repo repository.LocationRepository, city, country string) (*domain.Location, error) {
	location, err := repo.GetByCityCountry(ctx, city, country)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	location = &domain.Location{City: city, Country: country}
	err = repo.Create(ctx, location)
	if err == nil {
		return location, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return repo.GetByCityCountry(ctx, city, country)
	}
	return nil, err
}
