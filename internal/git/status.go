package git

import (
	"fmt"
)

// Header prefixes of `git status --branch --porcelain=v2`
const (
	headerOid      = "# branch.oid "
	headerHead     = "# branch.head "
	headerUpstream = "# branch.upstream "
	headerAB       = "# branch.ab "
)

// ParseStatus parses `git status --branch --porcelain=v2` output. It
// returns either a complete report or a *ParseError; a single bad line
// invalidates the whole report
func ParseStatus(input string) (StatusReport, error) {
	s := newScanner(input)

	branch, err := parseBranch(s)
	if err != nil {
		return StatusReport{}, err
	}

	var lines []StatusLine
	for !s.done() {
		ls := s.line()
		line, err := parseStatusLine(ls)
		if err != nil {
			return StatusReport{}, err
		}
		lines = append(lines, line)
	}

	return StatusReport{Branch: branch, Lines: lines}, nil
}

// parseBranch reads the optional header block. The oid and head lines come
// as a pair; upstream and ab are each optional and in that order
func parseBranch(s *scanner) (*BranchState, error) {
	if !s.hasPrefix(headerOid) {
		return nil, nil
	}

	var (
		b   BranchState
		err error
	)

	ls := s.line()
	if b.Oid, err = parseOid(ls); err != nil {
		return nil, err
	}

	ls = s.line()
	if b.Head, err = parseHead(ls); err != nil {
		return nil, err
	}

	if s.hasPrefix(headerUpstream) {
		ls = s.line()
		if err := ls.literal(headerUpstream); err != nil {
			return nil, err
		}
		name, err := refName(ls, "branch.upstream")
		if err != nil {
			return nil, err
		}
		b.Upstream = &name
	}

	if s.hasPrefix(headerAB) {
		ls = s.line()
		counts, err := parseAheadBehind(ls)
		if err != nil {
			return nil, err
		}
		b.Commits = &counts
	}

	return &b, nil
}

func parseOid(s *scanner) (Oid, error) {
	if err := s.literal(headerOid); err != nil {
		return Oid{}, err
	}
	if s.accept("(initial)") {
		return Oid{Initial: true}, s.expectEnd()
	}
	name, err := s.objectName()
	if err != nil {
		return Oid{}, err
	}
	return Oid{Commit: name}, s.expectEnd()
}

func parseHead(s *scanner) (Head, error) {
	if err := s.literal(headerHead); err != nil {
		return Head{}, err
	}
	if s.accept("(detached)") {
		return Head{Detached: true}, s.expectEnd()
	}
	name, err := refName(s, "branch.head")
	if err != nil {
		return Head{}, err
	}
	return Head{Branch: name}, nil
}

// refName takes the remainder of a header line, which must not be empty
func refName(s *scanner, rule string) (string, error) {
	if s.done() {
		return "", s.fail(Underrun, rule)
	}
	name := s.rest()
	s.pos = len(s.input)
	return name, nil
}

// parseAheadBehind reads "+N -M"
func parseAheadBehind(s *scanner) (TrackingCounts, error) {
	if err := s.literal(headerAB); err != nil {
		return TrackingCounts{}, err
	}
	if err := s.literal("+"); err != nil {
		return TrackingCounts{}, err
	}
	ahead, err := s.decimal("ahead count")
	if err != nil {
		return TrackingCounts{}, err
	}
	if err := s.literal(" -"); err != nil {
		return TrackingCounts{}, err
	}
	behind, err := s.decimal("behind count")
	if err != nil {
		return TrackingCounts{}, err
	}
	return TrackingCounts{Ahead: ahead, Behind: behind}, s.expectEnd()
}

func parseStatusLine(s *scanner) (StatusLine, error) {
	var (
		line StatusLine
		err  error
	)
	switch {
	case s.accept("1 "):
		line, err = parseOrdinary(s)
	case s.accept("2 "):
		line, err = parseRenameCopy(s)
	case s.accept("u "):
		line, err = parseUnmerged(s)
	case s.accept("? "):
		var p WorkPath
		p, err = s.path()
		line = UntrackedLine{Path: p}
	case s.accept("! "):
		var p WorkPath
		p, err = s.path()
		line = IgnoredLine{Path: p}
	default:
		return nil, s.fail(RuleFailed, "status line tag")
	}
	if err != nil {
		return nil, err
	}
	return line, s.expectEnd()
}

func parseOrdinary(s *scanner) (StatusLine, error) {
	var l OrdinaryLine
	var err error
	if l.Status, l.Sub, err = parseEntryPrefix(s); err != nil {
		return nil, err
	}
	modes, err := parseModes(s, 3)
	if err != nil {
		return nil, err
	}
	l.HeadMode, l.IndexMode, l.WorktreeMode = modes[0], modes[1], modes[2]
	objs, err := parseObjectNames(s, 2)
	if err != nil {
		return nil, err
	}
	l.HeadObj, l.IndexObj = objs[0], objs[1]
	if l.Path, err = s.path(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseRenameCopy(s *scanner) (StatusLine, error) {
	var l RenameCopyLine
	var err error
	if l.Status, l.Sub, err = parseEntryPrefix(s); err != nil {
		return nil, err
	}
	modes, err := parseModes(s, 3)
	if err != nil {
		return nil, err
	}
	l.HeadMode, l.IndexMode, l.WorktreeMode = modes[0], modes[1], modes[2]
	objs, err := parseObjectNames(s, 2)
	if err != nil {
		return nil, err
	}
	l.HeadObj, l.IndexObj = objs[0], objs[1]
	if l.ChangeScore, err = parseChangeScore(s); err != nil {
		return nil, err
	}
	if err := s.space(); err != nil {
		return nil, err
	}
	if l.Path, err = s.path(); err != nil {
		return nil, err
	}
	if err := s.literal("\t"); err != nil {
		return nil, err
	}
	if l.OrigPath, err = s.path(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseUnmerged(s *scanner) (StatusLine, error) {
	var l UnmergedLine
	var err error
	if l.Status, l.Sub, err = parseEntryPrefix(s); err != nil {
		return nil, err
	}
	modes, err := parseModes(s, 4)
	if err != nil {
		return nil, err
	}
	l.Stage1Mode, l.Stage2Mode, l.Stage3Mode, l.WorktreeMode = modes[0], modes[1], modes[2], modes[3]
	objs, err := parseObjectNames(s, 3)
	if err != nil {
		return nil, err
	}
	l.Stage1Obj, l.Stage2Obj, l.Stage3Obj = objs[0], objs[1], objs[2]
	if l.Path, err = s.path(); err != nil {
		return nil, err
	}
	return l, nil
}

// parseEntryPrefix reads "XY SUB " shared by 1, 2 and u entries
func parseEntryPrefix(s *scanner) (StatusPair, SubmoduleStatus, error) {
	pair, err := parseStatusPair(s)
	if err != nil {
		return StatusPair{}, SubmoduleStatus{}, err
	}
	if err := s.space(); err != nil {
		return StatusPair{}, SubmoduleStatus{}, err
	}
	sub, err := parseSubmodule(s)
	if err != nil {
		return StatusPair{}, SubmoduleStatus{}, err
	}
	if err := s.space(); err != nil {
		return StatusPair{}, SubmoduleStatus{}, err
	}
	return pair, sub, nil
}

func parseLineStatus(s *scanner) (LineStatus, error) {
	start := s.pos
	c, err := s.next("line status")
	if err != nil {
		return 0, err
	}
	st, ok := lineStatusCodes[c]
	if !ok {
		s.pos = start
		return 0, s.fail(RuleFailed, "line status")
	}
	return st, nil
}

func parseStatusPair(s *scanner) (StatusPair, error) {
	staged, err := parseLineStatus(s)
	if err != nil {
		return StatusPair{}, err
	}
	unstaged, err := parseLineStatus(s)
	if err != nil {
		return StatusPair{}, err
	}
	return StatusPair{Staged: staged, Unstaged: unstaged}, nil
}

// parseSubmodule reads "N..." or "S" followed by C|. M|. U|.
func parseSubmodule(s *scanner) (SubmoduleStatus, error) {
	if s.accept("N...") {
		return SubmoduleStatus{}, nil
	}
	if err := s.literal("S"); err != nil {
		return SubmoduleStatus{}, s.fail(RuleFailed, "submodule state")
	}
	flags := [3]bool{}
	for i, marker := range []byte{'C', 'M', 'U'} {
		start := s.pos
		c, err := s.next("submodule state")
		if err != nil {
			return SubmoduleStatus{}, err
		}
		switch c {
		case marker:
			flags[i] = true
		case '.':
		default:
			s.pos = start
			return SubmoduleStatus{}, s.fail(RuleFailed, "submodule state")
		}
	}
	return SubmoduleStatus{
		Submodule:        true,
		CommitChanged:    flags[0],
		HasModifications: flags[1],
		HasUntracked:     flags[2],
	}, nil
}

// parseModes reads n space-terminated modes
func parseModes(s *scanner, n int) ([]Mode, error) {
	modes := make([]Mode, n)
	for i := range modes {
		m, err := s.mode()
		if err != nil {
			return nil, err
		}
		if err := s.space(); err != nil {
			return nil, err
		}
		modes[i] = m
	}
	return modes, nil
}

// parseObjectNames reads n space-terminated object ids
func parseObjectNames(s *scanner, n int) ([]ObjectName, error) {
	names := make([]ObjectName, n)
	for i := range names {
		o, err := s.objectName()
		if err != nil {
			return nil, err
		}
		if err := s.space(); err != nil {
			return nil, err
		}
		names[i] = o
	}
	return names, nil
}

// parseChangeScore reads R<n> or C<n>, with n at most 100
func parseChangeScore(s *scanner) (ChangeScore, error) {
	var kind ChangeKind
	switch {
	case s.accept("R"):
		kind = ChangeRename
	case s.accept("C"):
		kind = ChangeCopy
	default:
		return ChangeScore{}, s.fail(RuleFailed, "change score")
	}
	start := s.pos
	n, err := s.decimal("change score")
	if err != nil {
		return ChangeScore{}, err
	}
	if n > 100 {
		s.pos = start
		return ChangeScore{}, s.fail(NumericOverflow, fmt.Sprintf("change score %d", n))
	}
	return ChangeScore{Kind: kind, Percent: uint8(n)}, nil
}
