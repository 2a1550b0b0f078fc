package service

import (
	"context"
	"strings"

	"evtrips/internal/domain"
	"evtrips/internal/redis"
	"evtrips/internal/repository"
)

// TripService owns the trip write path: find-or-create resolution of the
// entity chain, create idempotency, sparse patch updates, and the
// reference-counted cascade delete. Every multi-step write runs inside a
// single store transaction.
type TripService struct {
	store repository.Store
	cache *redis.StatsCache
}

// NewTripService creates a new TripService. The stats cache may be nil.
func NewTripService(store repository.Store, cache *redis.StatsCache) *TripService {
	return &TripService{store: store, cache: cache}
}

// CreateTripRequest is the flat row shape consumed by the create path.
type CreateTripRequest struct {
	TripDate                string
	Manufacturer            string
	Model                   string
	BodyType                string
	Segment                 string
	BatteryKwh              int
	RangeKm                 int
	ChargingType            string
	PriceEur                float64
	OriginCity              string
	OriginCountry           string
	DestinationCity         string
	DestinationCountry      string
	DistanceKm              float64
	CO2GPerKm               float64
	GridIntensityGCO2PerKwh float64
}

// CreateTrip materializes a trip from a flat row. Resubmitting the same
// logical row is idempotent: an existing trip with the same (date, variant,
// origin, destination, distance) tuple is returned unchanged and no rows
// are written. The emissions fields are not part of that identity tuple.
// The second return value reports whether a new trip row was inserted.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, bool, error) {
	spec, err := vehicleSpecFromCreate(req)
	if err != nil {
		return nil, false, err
	}

	tripDate, err := ParseTripDate(req.TripDate)
	if err != nil {
		return nil, false, err
	}

	if req.OriginCity == "" || req.OriginCountry == "" {
		return nil, false, ErrMissingOrigin
	}
	if req.DestinationCity == "" || req.DestinationCountry == "" {
		return nil, false, ErrMissingDestination
	}
	if req.DistanceKm < 0 {
		return nil, false, ErrInvalidDistance
	}

	var trip *domain.Trip
	var created bool

	err = s.store.RunInTx(ctx, func(repos repository.Repos) error {
		// Every create row carries an explicit price, so an existing
		// variant gets it; model attrs stay as first written.
		variant, err := resolveVehicle(ctx, repos, spec, resolveOverwrites{Price: true})
		if err != nil {
			return err
		}

		origin, err := resolveLocation(ctx, repos.Locations, req.OriginCity, req.OriginCountry)
		if err != nil {
			return err
		}

		// Resolved independently; a row may have origin == destination.
		destination, err := resolveLocation(ctx, repos.Locations, req.DestinationCity, req.DestinationCountry)
		if err != nil {
			return err
		}

		existing, err := repos.Trips.FindIdentical(ctx, tripDate, variant.ID, origin.ID, destination.ID, req.DistanceKm)
		if err != nil {
			return err
		}
		if existing != nil {
			// Pure resubmission: no new row, no field update.
			trip = existing
			return s.attachRelations(ctx, repos, trip)
		}

		trip = &domain.Trip{
			TripDate:                tripDate,
			VehicleVariantID:        variant.ID,
			OriginID:                origin.ID,
			DestinationID:           destination.ID,
			DistanceKm:              req.DistanceKm,
			CO2GPerKm:               req.CO2GPerKm,
			GridIntensityGCO2PerKwh: req.GridIntensityGCO2PerKwh,
		}
		if err := repos.Trips.Create(ctx, trip); err != nil {
			return err
		}
		created = true

		trip.Variant = variant
		trip.Origin = origin
		trip.Destination = destination
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.invalidateStats(ctx)
	}
	return trip, created, nil
}

// UpdateTripRequest is a sparse patch: nil fields keep their current value.
type UpdateTripRequest struct {
	TripDate                *string
	Manufacturer            *string
	Model                   *string
	BodyType                *string
	Segment                 *string
	BatteryKwh              *int
	RangeKm                 *int
	ChargingType            *string
	PriceEur                *float64
	OriginCity              *string
	OriginCountry           *string
	DestinationCity         *string
	DestinationCountry      *string
	DistanceKm              *float64
	CO2GPerKm               *float64
	GridIntensityGCO2PerKwh *float64
}

func (r UpdateTripRequest) touchesVehicle() bool {
	return r.Manufacturer != nil || r.Model != nil || r.BodyType != nil ||
		r.Segment != nil || r.BatteryKwh != nil || r.RangeKm != nil ||
		r.ChargingType != nil || r.PriceEur != nil
}

// UpdateTrip applies a sparse patch. If any vehicle field is present, the
// missing sub-fields are backfilled from the trip's current chain and the
// full resolution re-runs with the merged set; the trip may relink to an
// existing variant or a new one may be created. Mutable attributes of rows
// the resolution lands on change only when the patch names them; backfilled
// values never propagate onto shared entities. The predecessor variant is
// never cleaned up here; only DELETE performs cleanup. Each location side
// is recomputed independently, and only when its city or country is
// present in the patch.
func (s *TripService) UpdateTrip(ctx context.Context, id int64, req UpdateTripRequest) (*domain.Trip, error) {
	var trip *domain.Trip

	err := s.store.RunInTx(ctx, func(repos repository.Repos) error {
		var err error
		trip, err = repos.Trips.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.touchesVehicle() {
			spec, err := s.mergedVehicleSpec(ctx, repos, trip, req)
			if err != nil {
				return err
			}
			// Backfilled fields must not clobber rows the resolution
			// lands on; only fields present in the patch may.
			variant, err := resolveVehicle(ctx, repos, spec, resolveOverwrites{
				BodyType: req.BodyType != nil,
				Segment:  req.Segment != nil,
				Price:    req.PriceEur != nil,
			})
			if err != nil {
				return err
			}
			trip.VehicleVariantID = variant.ID
		}

		if req.OriginCity != nil || req.OriginCountry != nil {
			originID, err := s.remergeLocation(ctx, repos, trip.OriginID, req.OriginCity, req.OriginCountry, ErrMissingOrigin)
			if err != nil {
				return err
			}
			trip.OriginID = originID
		}

		if req.DestinationCity != nil || req.DestinationCountry != nil {
			destinationID, err := s.remergeLocation(ctx, repos, trip.DestinationID, req.DestinationCity, req.DestinationCountry, ErrMissingDestination)
			if err != nil {
				return err
			}
			trip.DestinationID = destinationID
		}

		if req.TripDate != nil {
			tripDate, err := ParseTripDate(*req.TripDate)
			if err != nil {
				return err
			}
			trip.TripDate = tripDate
		}
		if req.DistanceKm != nil {
			if *req.DistanceKm < 0 {
				return ErrInvalidDistance
			}
			trip.DistanceKm = *req.DistanceKm
		}
		if req.CO2GPerKm != nil {
			trip.CO2GPerKm = *req.CO2GPerKm
		}
		if req.GridIntensityGCO2PerKwh != nil {
			trip.GridIntensityGCO2PerKwh = *req.GridIntensityGCO2PerKwh
		}

		if err := repos.Trips.Update(ctx, trip); err != nil {
			return err
		}

		return s.attachRelations(ctx, repos, trip)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return trip, nil
}

// DeleteTrip removes a trip and reference-counts its dependencies. Each
// level of the variant -> model -> manufacturer chain is deleted only when
// nothing references it anymore; each location side is deleted only when no
// remaining trip references it from either side. Counts are evaluated after
// the trip row itself is gone, inside the same transaction.
func (s *TripService) DeleteTrip(ctx context.Context, id int64) error {
	err := s.store.RunInTx(ctx, func(repos repository.Repos) error {
		trip, err := repos.Trips.GetByID(ctx, id)
		if err != nil {
			return err
		}

		variant, err := repos.Variants.GetByID(ctx, trip.VehicleVariantID)
		if err != nil {
			return err
		}
		model, err := repos.Models.GetByID(ctx, variant.ModelID)
		if err != nil {
			return err
		}

		if err := repos.Trips.Delete(ctx, trip.ID); err != nil {
			return err
		}

		if err := s.cascadeVehicle(ctx, repos, variant, model); err != nil {
			return err
		}

		if err := s.cascadeLocation(ctx, repos, trip.OriginID); err != nil {
			return err
		}
		if trip.DestinationID != trip.OriginID {
			if err := s.cascadeLocation(ctx, repos, trip.DestinationID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

// cascadeVehicle conditionally deletes variant, model, and manufacturer,
// each level strictly on the count of referencing rows at that level.
func (s *TripService) cascadeVehicle(ctx context.Context, repos repository.Repos, variant *domain.VehicleVariant, model *domain.VehicleModel) error {
	tripCount, err := repos.Trips.CountByVariant(ctx, variant.ID)
	if err != nil {
		return err
	}
	if tripCount > 0 {
		return nil
	}
	if err := repos.Variants.Delete(ctx, variant.ID); err != nil {
		return err
	}

	variantCount, err := repos.Variants.CountByModel(ctx, model.ID)
	if err != nil {
		return err
	}
	if variantCount > 0 {
		return nil
	}
	if err := repos.Models.Delete(ctx, model.ID); err != nil {
		return err
	}

	modelCount, err := repos.Models.CountByManufacturer(ctx, model.ManufacturerID)
	if err != nil {
		return err
	}
	if modelCount > 0 {
		return nil
	}
	return repos.Manufacturers.Delete(ctx, model.ManufacturerID)
}

// cascadeLocation deletes a location when no remaining trip references it
// as origin or destination. Locations are one pool, not two.
func (s *TripService) cascadeLocation(ctx context.Context, repos repository.Repos, locationID int64) error {
	count, err := repos.Trips.CountByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return repos.Locations.Delete(ctx, locationID)
}

// GetTrip retrieves a fully materialized trip by ID.
func (s *TripService) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	repos := s.store.Repos()

	trip, err := repos.Trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, repos, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips retrieves fully materialized trips matching the filter.
func (s *TripService) ListTrips(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	repos := s.store.Repos()

	trips, err := repos.Trips.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, trip := range trips {
		if err := s.attachRelations(ctx, repos, trip); err != nil {
			return nil, err
		}
	}
	return trips, nil
}

// attachRelations loads the variant chain and both locations onto a trip.
func (s *TripService) attachRelations(ctx context.Context, repos repository.Repos, trip *domain.Trip) error {
	variant, err := repos.Variants.GetByID(ctx, trip.VehicleVariantID)
	if err != nil {
		return err
	}
	model, err := repos.Models.GetByID(ctx, variant.ModelID)
	if err != nil {
		return err
	}
	manufacturer, err := repos.Manufacturers.GetByID(ctx, model.ManufacturerID)
	if err != nil {
		return err
	}
	model.Manufacturer = manufacturer
	variant.Model = model
	trip.Variant = variant

	origin, err := repos.Locations.GetByID(ctx, trip.OriginID)
	if err != nil {
		return err
	}
	trip.Origin = origin

	if trip.DestinationID == trip.OriginID {
		trip.Destination = origin
	} else {
		destination, err := repos.Locations.GetByID(ctx, trip.DestinationID)
		if err != nil {
			return err
		}
		trip.Destination = destination
	}
	return nil
}

// mergedVehicleSpec backfills vehicle fields missing from the patch with
// the trip's current resolved chain, then normalizes whatever the patch
// supplied.
func (s *TripService) mergedVehicleSpec(ctx context.Context, repos repository.Repos, trip *domain.Trip, req UpdateTripRequest) (VehicleSpec, error) {
	variant, err := repos.Variants.GetByID(ctx, trip.VehicleVariantID)
	if err != nil {
		return VehicleSpec{}, err
	}
	model, err := repos.Models.GetByID(ctx, variant.ModelID)
	if err != nil {
		return VehicleSpec{}, err
	}
	manufacturer, err := repos.Manufacturers.GetByID(ctx, model.ManufacturerID)
	if err != nil {
		return VehicleSpec{}, err
	}

	spec := VehicleSpec{
		Manufacturer: manufacturer.Name,
		Model:        model.Name,
		BodyType:     model.BodyType,
		Segment:      model.Segment,
		BatteryKwh:   variant.BatteryKwh,
		RangeKm:      variant.RangeKm,
		ChargingType: variant.ChargingType,
		PriceEur:     variant.PriceEur,
	}

	if req.Manufacturer != nil {
		if strings.TrimSpace(*req.Manufacturer) == "" {
			return VehicleSpec{}, ErrMissingManufacturer
		}
		spec.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		if strings.TrimSpace(*req.Model) == "" {
			return VehicleSpec{}, ErrMissingModel
		}
		spec.Model = *req.Model
	}
	if req.BodyType != nil {
		spec.BodyType, err = normalizeBodyType(*req.BodyType)
		if err != nil {
			return VehicleSpec{}, err
		}
	}
	if req.Segment != nil {
		spec.Segment, err = normalizeSegment(*req.Segment)
		if err != nil {
			return VehicleSpec{}, err
		}
	}
	if req.BatteryKwh != nil {
		if *req.BatteryKwh <= 0 {
			return VehicleSpec{}, ErrInvalidBatteryCapacity
		}
		spec.BatteryKwh = *req.BatteryKwh
	}
	if req.RangeKm != nil {
		if *req.RangeKm <= 0 {
			return VehicleSpec{}, ErrInvalidRange
		}
		spec.RangeKm = *req.RangeKm
	}
	if req.ChargingType != nil {
		spec.ChargingType, err = normalizeChargingType(*req.ChargingType)
		if err != nil {
			return VehicleSpec{}, err
		}
	}
	if req.PriceEur != nil {
		spec.PriceEur = *req.PriceEur
	}

	return spec, nil
}

// remergeLocation backfills the missing half of a patched location side
// from the current row and resolves the merged pair.
func (s *TripService) remergeLocation(ctx context.Context, repos repository.Repos, currentID int64, city, country *string, missingErr error) (int64, error) {
	current, err := repos.Locations.GetByID(ctx, currentID)
	if err != nil {
		return 0, err
	}

	newCity := current.City
	newCountry := current.Country
	if city != nil {
		newCity = *city
	}
	if country != nil {
		newCountry = *country
	}
	if newCity == "" || newCountry == "" {
		return 0, missingErr
	}

	location, err := resolveLocation(ctx, repos.Locations, newCity, newCountry)
	if err != nil {
		return 0, err
	}
	return location.ID, nil
}

// vehicleSpecFromCreate validates and normalizes the vehicle fields of a
// create request.
func vehicleSpecFromCreate(req CreateTripRequest) (VehicleSpec, error) {
	if strings.TrimSpace(req.Manufacturer) == "" {
		return VehicleSpec{}, ErrMissingManufacturer
	}
	if strings.TrimSpace(req.Model) == "" {
		return VehicleSpec{}, ErrMissingModel
	}

	bodyType, err := normalizeBodyType(req.BodyType)
	if err != nil {
		return VehicleSpec{}, err
	}
	segment, err := normalizeSegment(req.Segment)
	if err != nil {
		return VehicleSpec{}, err
	}
	chargingType, err := normalizeChargingType(req.ChargingType)
	if err != nil {
		return VehicleSpec{}, err
	}

	if req.BatteryKwh <= 0 {
		return VehicleSpec{}, ErrInvalidBatteryCapacity
	}
	if req.RangeKm <= 0 {
		return VehicleSpec{}, ErrInvalidRange
	}

	return VehicleSpec{
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		BodyType:     bodyType,
		Segment:      segment,
		BatteryKwh:   req.BatteryKwh,
		RangeKm:      req.RangeKm,
		ChargingType: chargingType,
		PriceEur:     req.PriceEur,
	}, nil
}

// invalidateStats drops the cached statistics after a successful write.
func (s *TripService) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
