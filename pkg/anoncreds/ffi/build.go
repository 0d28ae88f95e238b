package ffi

import (
	"fmt"
	"math"
	"strings"
)

// BuildStrList wraps values as a counted string list without copying. A nil
// or empty input still yields a well-formed empty list.
func BuildStrList(values []string) StrList {
	if values == nil {
		values = []string{}
	}
	return StrList{Count: len(values), Data: values}
}

// BuildHandleList wraps handles as a counted handle list without copying.
func BuildHandleList(handles []ObjectHandle) HandleList {
	if handles == nil {
		handles = []ObjectHandle{}
	}
	return HandleList{Count: len(handles), Data: handles}
}

// BuildByteBuffer borrows data as a length-prefixed buffer.
func BuildByteBuffer(data []byte) ByteBuffer {
	if len(data) == 0 {
		return ByteBuffer{}
	}
	return ByteBuffer{Len: int64(len(data)), Data: &data[0]}
}

// BuildCredentialEntries zips the three credential arrays into entry
// records. Record i holds element i of each array. The native record stores
// timestamps as int32; values outside that range are rejected with
// ErrMalformed rather than truncated.
func BuildCredentialEntries(credentials []ObjectHandle, timestamps []int64, revStates []ObjectHandle) (CredentialEntryList, error) {
	if err := sameCounts("credential entries",
		Count{"credentials", len(credentials)},
		Count{"timestamps", len(timestamps)},
		Count{"rev_states", len(revStates)},
	); err != nil {
		return CredentialEntryList{}, err
	}
	for i, ts := range timestamps {
		if ts < math.MinInt32 || ts > math.MaxInt32 {
			return CredentialEntryList{}, fmt.Errorf("%w: timestamps[%d]=%d outside int32 range", ErrMalformed, i, ts)
		}
	}
	entries := make([]CredentialEntry, len(credentials))
	for i := range entries {
		entries[i] = CredentialEntry{
			Credential: credentials[i],
			Timestamp:  timestamps[i],
			RevState:   revStates[i],
		}
	}
	return CredentialEntryList{Count: len(entries), Data: entries}, nil
}

// BuildProofDirectives zips the four prove arrays into proof records.
func BuildProofDirectives(entryIdx []int64, referents []string, isPredicate, reveal []bool) (CredentialProveList, error) {
	if err := sameCounts("credential proofs",
		Count{"entry_idx", len(entryIdx)},
		Count{"referents", len(referents)},
		Count{"is_predicate", len(isPredicate)},
		Count{"reveal", len(reveal)},
	); err != nil {
		return CredentialProveList{}, err
	}
	proofs := make([]CredentialProve, len(entryIdx))
	for i := range proofs {
		proofs[i] = CredentialProve{
			EntryIdx:    entryIdx[i],
			Referent:    referents[i],
			IsPredicate: isPredicate[i],
			Reveal:      reveal[i],
		}
	}
	return CredentialProveList{Count: len(proofs), Data: proofs}, nil
}

// BuildRevocationInfo builds the issuance revocation record. It is always
// built; null handles tell the library that revocation is not configured.
func BuildRevocationInfo(regDef, regDefPrivate ObjectHandle, regIdx int64, tailsPath string) CredRevInfo {
	return CredRevInfo{
		RegDef:        regDef,
		RegDefPrivate: regDefPrivate,
		RegIdx:        regIdx,
		TailsPath:     tailsPath,
	}
}

// BuildNonrevokedOverrides zips the override arrays into one record per
// registry definition.
func BuildNonrevokedOverrides(revRegDefIDs []string, requestedFrom, overrideTs []int32) (NonrevokedIntervalOverrideList, error) {
	if err := sameCounts("nonrevoked interval overrides",
		Count{"rev_reg_def_ids", len(revRegDefIDs)},
		Count{"requested_from_ts", len(requestedFrom)},
		Count{"override_rev_status_list_ts", len(overrideTs)},
	); err != nil {
		return NonrevokedIntervalOverrideList{}, err
	}
	overrides := make([]NonrevokedIntervalOverride, len(revRegDefIDs))
	for i := range overrides {
		overrides[i] = NonrevokedIntervalOverride{
			RevRegDefID:             revRegDefIDs[i],
			RequestedFromTs:         requestedFrom[i],
			OverrideRevStatusListTs: overrideTs[i],
		}
	}
	return NonrevokedIntervalOverrideList{Count: len(overrides), Data: overrides}, nil
}

// Count names one array of a parallel-array group and its length.
type Count struct {
	Name string
	N    int
}

// MatchCounts checks that every array in a group has the same length.
func MatchCounts(group string, counts ...Count) error {
	return sameCounts(group, counts...)
}

func sameCounts(group string, fields ...Count) error {
	if len(fields) == 0 {
		return nil
	}
	want := fields[0].N
	for _, f := range fields[1:] {
		if f.N != want {
			return fmt.Errorf("%w: %s (%s)", ErrCountMismatch, group, describe(fields))
		}
	}
	return nil
}

func describe(fields []Count) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s=%d", f.Name, f.N)
	}
	return strings.Join(parts, ", ")
}
