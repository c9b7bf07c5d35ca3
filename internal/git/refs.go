package git

import (
	"math"
	"strings"
	"time"
)

// RefFormat is the for-each-ref format whose `--shell` output ParseRefs
// understands. The field order is fixed
const RefFormat = "%(objectname) %(*objectname) %(objecttype) %(refname) " +
	"%(upstream) %(upstream:remotename) %(upstream:track) %(creator)"

const refFieldCount = 8

// maxEpoch is 9999-12-31T23:59:59Z, the last second a creator date may name
const maxEpoch = 253402300799

// ParseRefs parses `git for-each-ref --shell --format RefFormat` output,
// one record per line. Any malformed record fails the whole listing
func ParseRefs(input string) ([]RefRecord, error) {
	s := newScanner(input)
	var refs []RefRecord
	for !s.done() {
		ls := s.line()
		ref, err := parseRefRecord(ls)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseRefRecord(s *scanner) (RefRecord, error) {
	var fields [refFieldCount]string
	for i := range fields {
		if i > 0 {
			if err := s.space(); err != nil {
				return RefRecord{}, err
			}
		}
		f, err := s.quoted()
		if err != nil {
			return RefRecord{}, err
		}
		fields[i] = f
	}
	if err := s.expectEnd(); err != nil {
		return RefRecord{}, err
	}

	var (
		rec RefRecord
		err error
	)
	if rec.ObjectName, err = wholeObjectName(fields[0]); err != nil {
		return RefRecord{}, err
	}
	if fields[1] != "" {
		peeled, err := wholeObjectName(fields[1])
		if err != nil {
			return RefRecord{}, err
		}
		rec.ReferredObject = &peeled
	}
	if rec.ObjectType, err = parseObjectType(fields[2]); err != nil {
		return RefRecord{}, err
	}
	if fields[3] == "" {
		return RefRecord{}, newScanner(fields[3]).fail(Underrun, "refname")
	}
	rec.LocalRef = fields[3]
	if rec.Upstream, err = parseTrackSync(fields[4], fields[5], fields[6]); err != nil {
		return RefRecord{}, err
	}
	if rec.CreatorName, rec.CreatorEmail, rec.CreationDate, err = parseCreator(fields[7]); err != nil {
		return RefRecord{}, err
	}
	return rec, nil
}

// quoted consumes one field as printed by `--shell`: text in single
// quotes, where an embedded quote or bang is written '\'' or '\!'
func (s *scanner) quoted() (string, error) {
	if err := s.literal("'"); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		chunk, err := s.until("'", "quoted field")
		if err != nil {
			return "", err
		}
		b.WriteString(chunk)
		switch {
		case s.accept(`'\''`):
			b.WriteByte('\'')
		case s.accept(`'\!'`):
			b.WriteByte('!')
		default:
			s.pos++
			return b.String(), nil
		}
	}
}

// wholeObjectName requires field to be exactly one object id
func wholeObjectName(field string) (ObjectName, error) {
	fs := newScanner(field)
	name, err := fs.objectName()
	if err != nil {
		return "", err
	}
	return name, fs.expectEnd()
}

func parseObjectType(field string) (ObjectType, error) {
	switch field {
	case "blob":
		return ObjectBlob, nil
	case "tree":
		return ObjectTree, nil
	case "commit":
		return ObjectCommit, nil
	case "tag":
		return ObjectTag, nil
	default:
		return 0, newScanner(field).fail(RuleFailed, "object type")
	}
}

// parseTrackSync derives the upstream relationship. An empty upstream
// name is Untracked whatever the annotation says
func parseTrackSync(upstream, remote, annotation string) (TrackSync, error) {
	counts, gone, err := parseTrackingAnnotation(annotation)
	if err != nil {
		return TrackSync{}, err
	}
	if upstream == "" {
		return TrackSync{State: SyncUntracked}, nil
	}
	if gone {
		return TrackSync{State: SyncGone, Remote: remote, RemoteRef: upstream}, nil
	}
	return TrackSync{State: SyncTrack, Remote: remote, RemoteRef: upstream, Counts: counts}, nil
}

// parseTrackingAnnotation reads "", "[gone]", or a bracketed ", " list of
// "ahead N" and "behind N" clauses. Same-kind clauses are summed
func parseTrackingAnnotation(annotation string) (TrackingCounts, bool, error) {
	if annotation == "" {
		return TrackingCounts{}, false, nil
	}
	s := newScanner(annotation)
	if s.accept("[gone]") {
		return TrackingCounts{}, true, s.expectEnd()
	}
	if err := s.literal("["); err != nil {
		return TrackingCounts{}, false, err
	}

	var total TrackingCounts
	for {
		var clause TrackingCounts
		switch {
		case s.accept("ahead "):
			n, err := s.decimal("ahead count")
			if err != nil {
				return TrackingCounts{}, false, err
			}
			clause.Ahead = n
		case s.accept("behind "):
			n, err := s.decimal("behind count")
			if err != nil {
				return TrackingCounts{}, false, err
			}
			clause.Behind = n
		default:
			return TrackingCounts{}, false, s.fail(RuleFailed, "tracking clause")
		}
		if total.Ahead > math.MaxUint64-clause.Ahead || total.Behind > math.MaxUint64-clause.Behind {
			return TrackingCounts{}, false, s.fail(NumericOverflow, "tracking counts")
		}
		total = total.Add(clause)
		if !s.accept(", ") {
			break
		}
	}

	if err := s.literal("]"); err != nil {
		return TrackingCounts{}, false, err
	}
	return total, false, s.expectEnd()
}

// parseCreator reads "Name <email> <epoch> <+|-><hh><mm>". The returned
// time is the epoch instant carried in the parsed zone
func parseCreator(field string) (string, string, time.Time, error) {
	s := newScanner(field)

	name, err := s.until(" <", "creator name")
	if err != nil {
		return "", "", time.Time{}, err
	}
	s.pos += len(" <")
	email, err := s.until("> ", "creator email")
	if err != nil {
		return "", "", time.Time{}, err
	}
	s.pos += len("> ")

	epochStart := s.pos
	epoch, err := s.decimal("creator epoch")
	if err != nil {
		return "", "", time.Time{}, err
	}
	if epoch > maxEpoch {
		s.pos = epochStart
		return "", "", time.Time{}, s.fail(NumericOverflow, "creator epoch")
	}
	if err := s.space(); err != nil {
		return "", "", time.Time{}, err
	}

	var sign int
	switch {
	case s.accept("+"):
		sign = 1
	case s.accept("-"):
		sign = -1
	default:
		return "", "", time.Time{}, s.fail(RuleFailed, "zone sign")
	}
	hoursStart := s.pos
	hours, err := s.fixedDigits(2, "zone hours")
	if err != nil {
		return "", "", time.Time{}, err
	}
	if hours > 23 {
		s.pos = hoursStart
		return "", "", time.Time{}, s.fail(RuleFailed, "zone hours")
	}
	minutesStart := s.pos
	minutes, err := s.fixedDigits(2, "zone minutes")
	if err != nil {
		return "", "", time.Time{}, err
	}
	if minutes > 59 {
		s.pos = minutesStart
		return "", "", time.Time{}, s.fail(RuleFailed, "zone minutes")
	}
	if err := s.expectEnd(); err != nil {
		return "", "", time.Time{}, err
	}

	zone := time.FixedZone(field[len(field)-5:], sign*(hours*60+minutes)*60)
	return name, email, time.Unix(int64(epoch), 0).In(zone), nil
}
