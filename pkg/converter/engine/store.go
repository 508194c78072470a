package engine

// VolumeStore indexes logical volumes by name. When several volumes share a
// name, lookups return the first one registered.
type VolumeStore struct {
	volumes []*LogicalVolume
	byName  map[string]*LogicalVolume
}

// NewVolumeStore ...
func NewVolumeStore() *VolumeStore {
	return &VolumeStore{byName: map[string]*LogicalVolume{}}
}

// Register adds lv to the store. It returns false if the name was already taken.
func (s *VolumeStore) Register(lv *LogicalVolume) bool {
	s.volumes = append(s.volumes, lv)
	if _, found := s.byName[lv.Name()]; found {
		return false
	}
	s.byName[lv.Name()] = lv
	return true
}

// Get returns volume by name.
func (s *VolumeStore) Get(name string) (*LogicalVolume, bool) {
	lv, found := s.byName[name]
	return lv, found
}

// Volumes returns all registered volumes in registration order.
func (s *VolumeStore) Volumes() []*LogicalVolume {
	return s.volumes
}

// Len ...
func (s *VolumeStore) Len() int {
	return len(s.volumes)
}
