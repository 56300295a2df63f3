package crossway

// connectivity tracks which stones are connected, per player, using a
// single arena-indexed disjoint set. Cells occupy indices [0, size²);
// each player additionally owns two virtual nodes representing the two
// board edges they must connect. A player has won exactly when their
// two virtual edge nodes share a root.
//
// Unions only ever happen between nodes of the same player (a cell is
// unioned with a neighbour only when both carry the player's stones),
// so one flat arena serves every player.
type connectivity struct {
	size    int
	players int
	parent  []int32
}

func newConnectivity(size, players int) *connectivity {
	n := size*size + 2*players
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	return &connectivity{size: size, players: players, parent: parent}
}

func (c *connectivity) clone() *connectivity {
	parent := make([]int32, len(c.parent))
	copy(parent, c.parent)
	return &connectivity{size: c.size, players: c.players, parent: parent}
}

// reset returns every node to its own singleton set.
func (c *connectivity) reset() {
	for i := range c.parent {
		c.parent[i] = int32(i)
	}
}

func (c *connectivity) cell(coord Coord) int32 {
	return int32(coord.Row*c.size + coord.Col)
}

// edges returns the two virtual edge nodes for player.
func (c *connectivity) edges(player PlayerID) (int32, int32) {
	base := int32(c.size*c.size + 2*int(player))
	return base, base + 1
}

// find locates the set root with path halving, iteratively so that
// adversarial inputs cannot overflow the stack.
func (c *connectivity) find(i int32) int32 {
	for c.parent[i] != i {
		c.parent[i] = c.parent[c.parent[i]]
		i = c.parent[i]
	}
	return i
}

func (c *connectivity) union(i, j int32) {
	ri, rj := c.find(i), c.find(j)
	if ri != rj {
		c.parent[ri] = rj
	}
}

// connected reports whether player's two edges are joined.
func (c *connectivity) connected(player PlayerID) bool {
	a, b := c.edges(player)
	return c.find(a) == c.find(b)
}
