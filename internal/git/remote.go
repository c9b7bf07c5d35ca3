package git

// ParseRemoteRefs parses `git ls-remote` output: one "<id>\t<ref>" pair
// per line, no header
func ParseRemoteRefs(input string) ([]RemoteRefPair, error) {
	s := newScanner(input)
	var pairs []RemoteRefPair
	for !s.done() {
		ls := s.line()
		id, err := ls.objectName()
		if err != nil {
			return nil, err
		}
		if err := ls.literal("\t"); err != nil {
			return nil, err
		}
		if ls.done() {
			return nil, ls.fail(Underrun, "remote ref path")
		}
		pairs = append(pairs, RemoteRefPair{RefName: id, Path: ls.rest()})
	}
	return pairs, nil
}
