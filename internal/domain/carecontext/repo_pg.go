package carecontext

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/carenote/carenote/internal/aggregate"
	"github.com/carenote/carenote/internal/platform/fhir"
	"github.com/carenote/carenote/pkg/fhirmodels"
)

type datasetRepoPG struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewDatasetRepoPG(pool *pgxpool.Pool, logger zerolog.Logger) DatasetRepository {
	return &datasetRepoPG{pool: pool, logger: logger}
}

func (r *datasetRepoPG) Dataset(ctx context.Context, patientID string) (*aggregate.Dataset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT resource_type, resource
		FROM clinical_resource
		WHERE patient_id = $1
		ORDER BY created_at, id`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := &aggregate.Dataset{}
	for rows.Next() {
		var resourceType string
		var raw []byte
		if err := rows.Scan(&resourceType, &raw); err != nil {
			return nil, err
		}
		if err := r.appendResource(ds, resourceType, raw); err != nil {
			// A malformed row degrades to absence; the engine tolerates
			// any subset of records.
			r.logger.Warn().Err(err).
				Str("patient_id", patientID).
				Str("resource_type", resourceType).
				Msg("skipping unreadable clinical resource")
		}
	}
	return ds, rows.Err()
}

func (r *datasetRepoPG) appendResource(ds *aggregate.Dataset, resourceType string, raw []byte) error {
	switch resourceType {
	case ResourcePatient:
		var p fhir.Patient
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		ds.Patient = &p
	case ResourceCondition:
		var c fhir.Condition
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		ds.Conditions = append(ds.Conditions, c)
	case ResourceMedicationRequest:
		var m fhir.MedicationRequest
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		ds.Medications = append(ds.Medications, m)
	case ResourceAllergyIntolerance:
		var a fhir.AllergyIntolerance
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		ds.Allergies = append(ds.Allergies, a)
	case ResourceDiagnosticReport:
		var dr fhir.DiagnosticReport
		if err := json.Unmarshal(raw, &dr); err != nil {
			return err
		}
		ds.DiagnosticReports = append(ds.DiagnosticReports, dr)
	case ResourceObservation:
		var o fhir.Observation
		if err := json.Unmarshal(raw, &o); err != nil {
			return err
		}
		if isVitalSign(&o) {
			ds.VitalSigns = append(ds.VitalSigns, o)
		} else {
			ds.Observations = append(ds.Observations, o)
		}
	case ResourceProcedure:
		var p fhir.Procedure
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		ds.Procedures = append(ds.Procedures, p)
	case ResourceEncounter:
		var e fhir.Encounter
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		ds.Encounters = append(ds.Encounters, e)
	default:
		r.logger.Debug().Str("resource_type", resourceType).Msg("ignoring unhandled resource type")
	}
	return nil
}

// isVitalSign routes an observation by its category coding.
func isVitalSign(o *fhir.Observation) bool {
	for i := range o.Category {
		for _, coding := range o.Category[i].Coding {
			if coding.Code == fhirmodels.ObsCategoryVitalSigns {
				return true
			}
		}
	}
	return false
}
