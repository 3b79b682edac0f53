package constraint

import "go.rigidcore.dev/engine/skeleton"

// UnionFind groups skeletons that share at least one active contact this
// step, per spec §3/§4.5's island-partitioning design note: the LCP solve
// only needs to iterate constraints within a group together, since groups
// share no coupled degrees of freedom.
type UnionFind struct {
	members []*skeleton.Skeleton
}

// NewUnionFind resets every skeleton's UnionRoot/UnionSize to a singleton
// set, per spec §9's "reset at start of each step" requirement.
func NewUnionFind(skels []*skeleton.Skeleton) *UnionFind {
	for i, s := range skels {
		s.UnionRoot = i
		s.UnionSize = 1
	}
	return &UnionFind{members: skels}
}

func (u *UnionFind) find(i int) int {
	s := u.members[i]
	if s.UnionRoot == i {
		return i
	}
	root := u.find(s.UnionRoot)
	s.UnionRoot = root
	return root
}

// Find returns the representative index of the group skel belongs to.
func (u *UnionFind) Find(skel *skeleton.Skeleton) int {
	for i, s := range u.members {
		if s == skel {
			return u.find(i)
		}
	}
	return -1
}

// Union merges the groups containing a and b, by size, per the standard
// weighted union-find scheme.
func (u *UnionFind) Union(a, b *skeleton.Skeleton) {
	ia, ib := u.Find(a), u.Find(b)
	if ia < 0 || ib < 0 || ia == ib {
		return
	}
	ra, rb := u.members[ia], u.members[ib]
	if ra.UnionSize < rb.UnionSize {
		ra, rb = rb, ra
		ia, ib = ib, ia
	}
	rb.UnionRoot = ia
	ra.UnionSize += rb.UnionSize
}

// Groups partitions members by their union-find representative.
func (u *UnionFind) Groups() map[int][]*skeleton.Skeleton {
	out := make(map[int][]*skeleton.Skeleton)
	for i, s := range u.members {
		root := u.find(i)
		out[root] = append(out[root], s)
	}
	return out
}
