package types

import (
	"fmt"
	"strings"
)

// UnresolvedEntityError indicates one or more career ids are not in the catalog
type UnresolvedEntityError struct {
	CareerIDs []string
}

func (e *UnresolvedEntityError) Error() string {
	return fmt.Sprintf("occupation not found: %s", strings.Join(e.CareerIDs, ", "))
}

// DemographicInputError indicates a request carried demographic attributes
type DemographicInputError struct {
	Issues []string
}

func (e *DemographicInputError) Error() string {
	return fmt.Sprintf("demographic data is not accepted as input: %s", strings.Join(e.Issues, "; "))
}
