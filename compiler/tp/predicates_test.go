package tp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberscript/ember/compiler/rt"
)

func TestDefaultFinalizedAndMalformed(t *testing.T) {
	d := Default{}

	assert.True(t, d.IsFinalized(Dynamic{}))
	assert.False(t, d.IsFinalized(Malformed{}))
	assert.True(t, d.IsMalformed(Malformed{}))
	assert.False(t, d.IsMalformed(Dynamic{}))
}

func TestDefaultSubtypeOfVoidAndDynamic(t *testing.T) {
	d := Default{}

	assert.True(t, d.IsSubtypeOf(Void{}, Void{}))
	assert.False(t, d.IsSubtypeOf(Dynamic{}, Void{}))
	assert.False(t, d.IsSubtypeOf(Void{}, ObjectType{}))

	assert.True(t, d.IsSubtypeOf(Dynamic{}, &Class{Name: "Foo"}))
	assert.True(t, d.IsSubtypeOf(&Class{Name: "Foo"}, Dynamic{}))
}

func TestDefaultSubtypeOfObjectAndNull(t *testing.T) {
	d := Default{}

	assert.True(t, d.IsSubtypeOf(&Class{Name: "Foo"}, ObjectType{}))
	assert.True(t, d.IsSubtypeOf(NullType{}, &Class{Name: "Foo"}))
	assert.False(t, d.IsSubtypeOf(NullType{}, Void{}))
}

func TestDefaultSubtypeOfNominalInheritance(t *testing.T) {
	d := Default{}

	animal := &Class{Name: "Animal"}
	dog := &Class{Name: "Dog", Super: &Instance{Class: animal}}

	assert.True(t, d.IsSubtypeOf(dog, animal))
	assert.False(t, d.IsSubtypeOf(animal, dog))
	assert.True(t, d.IsSubtypeOf(dog, dog))
}

func TestDefaultSubtypeOfCovariantTypeArguments(t *testing.T) {
	d := Default{}

	animal := &Class{Name: "Animal"}
	dog := &Class{Name: "Dog", Super: &Instance{Class: animal}}
	list := &Class{Name: "List", TypeParams: []string{"T"}}

	listOfDog := &Instance{Class: list, Args: []Type{dog}}
	listOfAnimal := &Instance{Class: list, Args: []Type{animal}}

	assert.True(t, d.IsSubtypeOf(listOfDog, listOfAnimal))
	assert.False(t, d.IsSubtypeOf(listOfAnimal, listOfDog))
}

func TestDefaultIsInstantiated(t *testing.T) {
	d := Default{}

	list := &Class{Name: "List", TypeParams: []string{"T"}}
	tparam := TypeParam{Class: list, Index: 0}

	assert.False(t, d.IsInstantiated(tparam))
	assert.False(t, d.IsInstantiated(&Instance{Class: list, Args: []Type{tparam}}))
	assert.True(t, d.IsInstantiated(&Instance{Class: list, Args: []Type{&Class{Name: "int"}}}))
}

func TestDefaultIsInstanceOfPrimitives(t *testing.T) {
	d := Default{}

	intClass := &Class{Name: "int"}

	assert.True(t, d.IsInstanceOf(rt.Null, NullType{}))
	assert.False(t, d.IsInstanceOf(rt.Null, intClass))
	assert.True(t, d.IsInstanceOf(rt.NewObject("int", 5), intClass))
	assert.False(t, d.IsInstanceOf(rt.NewObject("int", 5), &Class{Name: "String"}))
	assert.True(t, d.IsInstanceOf(rt.NewObject("anything", nil), Dynamic{}))
}

func TestDefaultIsWithinBoundsOfDefersToSubtyping(t *testing.T) {
	d := Default{}

	animal := &Class{Name: "Animal"}
	dog := &Class{Name: "Dog", Super: &Instance{Class: animal}}

	assert.True(t, d.IsWithinBoundsOf(dog, animal))
	assert.False(t, d.IsWithinBoundsOf(animal, dog))
}
